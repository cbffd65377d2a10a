package api

import "time"

// Shapes consumed from the backend REST API. Amounts and balances are
// decimal strings on the wire, same as everywhere else in the system.
type (
	User struct {
		ID            int64  `json:"id"`
		Username      string `json:"username"`
		FullName      string `json:"fullName,omitempty"`
		Email         string `json:"email,omitempty"`
		Mobile        string `json:"mobile,omitempty"`
		City          string `json:"city,omitempty"`
		Country       string `json:"country,omitempty"`
		MonthlyBudget string `json:"monthlyBudget,omitempty"`
		Currency      string `json:"currency"`
	}

	Bank struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Icon string `json:"icon,omitempty"`
	}

	Account struct {
		ID            int64     `json:"id"`
		UserID        int64     `json:"userId"`
		BankID        int64     `json:"bankId"`
		AccountNumber string    `json:"accountNumber"`
		Type          string    `json:"type"`
		Balance       string    `json:"balance"`
		IsLinked      bool      `json:"isLinked"`
		LoanAmount    string    `json:"loanAmount,omitempty"`
		LoanPaid      string    `json:"loanPaid,omitempty"`
		CreatedAt     time.Time `json:"createdAt"`
		Bank          *Bank     `json:"bank,omitempty"`
	}

	Card struct {
		ID                int64     `json:"id"`
		UserID            int64     `json:"userId"`
		ContactNumber     string    `json:"contactNumber"`
		CardAccountNumber string    `json:"cardAccountNumber"`
		AccountType       string    `json:"accountType"`
		InitialBalance    string    `json:"initialBalance"`
		CreatedAt         time.Time `json:"createdAt"`
		DuePayments       int       `json:"duePayments,omitempty"`
	}

	Loan struct {
		ID              int64   `json:"id"`
		UserID          int64   `json:"userId"`
		LoanType        string  `json:"loanType"`
		TotalAmount     float64 `json:"totalAmount"`
		EMIAmount       float64 `json:"emiAmount"`
		RemainingAmount float64 `json:"remainingAmount"`
	}
)

// Label is the display name used when a transaction has to be attributed to
// an account, e.g. "HDFC (...4821)".
func (a Account) Label() string {
	num := a.AccountNumber
	if len(num) > 4 {
		num = num[len(num)-4:]
	}
	if a.Bank != nil && a.Bank.Name != "" {
		return a.Bank.Name + " (..." + num + ")"
	}
	return "Account ..." + num
}
