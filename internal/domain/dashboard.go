package domain

// ============================================================
// Dashboard: savings goals ("caixinhas")
// ============================================================

// GoalCategory is a predefined savings-purpose bucket.
type GoalCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Goal is a savings target held in session state only.
type Goal struct {
	ID            string  `json:"id"`
	CategoryID    string  `json:"categoryId"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
}

// CreateGoalRequest is the body for POST /v1/session/dashboard/goals.
// TargetAmount stays a string: the form sends whatever the user typed.
type CreateGoalRequest struct {
	CategoryID   string `json:"categoryId"`
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
}

// CreateCategoryRequest is the body for POST /v1/session/dashboard/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryCard is a category with its active goal count.
type CategoryCard struct {
	GoalCategory
	ActiveGoals int    `json:"activeGoals"`
	GoalsLabel  string `json:"goalsLabel,omitempty"`
}

// GoalCard is a goal decorated for display.
type GoalCard struct {
	Goal
	CategoryName    string  `json:"categoryName"`
	Color           string  `json:"color"`
	ProgressPercent float64 `json:"progressPercent"`
	CurrentLabel    string  `json:"currentLabel"`
	TargetLabel     string  `json:"targetLabel"`
}

// DashboardView is returned by GET /v1/session/dashboard.
type DashboardView struct {
	Greeting   string         `json:"greeting"`
	Categories []CategoryCard `json:"categories"`
	Goals      []GoalCard     `json:"goals"`
}

// ============================================================
// Wallets
// ============================================================

// Wallet is a Web3 wallet offered by the connect dialog.
type Wallet struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// WalletConnectRequest is the body for POST /v1/session/wallet/connect.
type WalletConnectRequest struct {
	WalletID string `json:"walletId"`
}

// CreateGoalResponse is the 201 body of POST /v1/session/dashboard/goals.
type CreateGoalResponse struct {
	Goal   *Goal   `json:"goal"`
	Events []Event `json:"events"`
}

// EventsResponse carries the events of an action that changes no
// visible session state.
type EventsResponse struct {
	Events []Event `json:"events"`
}
