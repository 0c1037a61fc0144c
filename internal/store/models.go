package store

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskCategory groups tasks. The empty string means "uncategorized".
type TaskCategory string

const (
	TaskWork     TaskCategory = "work"
	TaskPersonal TaskCategory = "personal"
	TaskErrands  TaskCategory = "errands"
)

var TaskCategories = []TaskCategory{TaskWork, TaskPersonal, TaskErrands}

func (c TaskCategory) Valid() bool {
	if c == "" {
		return true
	}
	for _, known := range TaskCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ExpenseCategory is a closed set; unrecognized categories are not representable.
type ExpenseCategory string

const (
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseEntertainment ExpenseCategory = "entertainment"
	ExpenseUtilities     ExpenseCategory = "utilities"
	ExpenseShopping      ExpenseCategory = "shopping"
	ExpenseOther         ExpenseCategory = "other"
)

var ExpenseCategories = []ExpenseCategory{
	ExpenseFood, ExpenseTransport, ExpenseEntertainment,
	ExpenseUtilities, ExpenseShopping, ExpenseOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Theme of the rendering layer. Persisted, never interpreted by the store.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Priority    Priority     `json:"priority"`
	Category    TaskCategory `json:"category,omitempty"`
	Completed   bool         `json:"completed"`
	CreatedAt   string       `json:"createdAt"` // RFC3339
	Order       int          `json:"order"`
}

// Expense amount is signed: positive is spending, negative is income.
type Expense struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   float64         `json:"amount"`
	Category ExpenseCategory `json:"category"`
	Date     string          `json:"date"` // RFC3339
}

type QuickLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Snapshot is the complete application state: every collection and every
// preference field. It is the exact shape of the persisted document and of
// export/import backups.
type Snapshot struct {
	Theme           Theme       `json:"theme"`
	AccentColor     string      `json:"accentColor"`
	WeatherLocation string      `json:"weatherLocation"`
	UserName        string      `json:"userName"`
	Tasks           []Task      `json:"tasks"`
	Expenses        []Expense   `json:"expenses"`
	QuickLinks      []QuickLink `json:"quickLinks"`
	Notes           []Note      `json:"notes"`
}

// DefaultSnapshot is the state of a fresh installation.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Theme:           ThemeLight,
		AccentColor:     "#3b82f6",
		WeatherLocation: "London",
		UserName:        "Friend",
		Tasks:           []Task{},
		Expenses:        []Expense{},
		QuickLinks: []QuickLink{
			{ID: "1", Title: "GitHub", URL: "https://github.com", Icon: "🐙"},
			{ID: "2", Title: "Gmail", URL: "https://gmail.com", Icon: "📧"},
			{ID: "3", Title: "YouTube", URL: "https://youtube.com", Icon: "📺"},
		},
		Notes: []Note{},
	}
}

// Normalize fills nil collections so decoded state behaves like defaults.
func (s *Snapshot) Normalize() {
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Expenses == nil {
		s.Expenses = []Expense{}
	}
	if s.QuickLinks == nil {
		s.QuickLinks = []QuickLink{}
	}
	if s.Notes == nil {
		s.Notes = []Note{}
	}
}

// Clone returns a deep copy so callers can hand snapshots out without
// sharing backing arrays with the canonical state.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Tasks = append([]Task(nil), s.Tasks...)
	c.Expenses = append([]Expense(nil), s.Expenses...)
	c.QuickLinks = append([]QuickLink(nil), s.QuickLinks...)
	c.Notes = append([]Note(nil), s.Notes...)
	return c
}
