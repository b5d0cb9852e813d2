package api

// Participant is one person's share of a bill.
type Participant struct {
	PersonID    string  `json:"personId"`
	PersonName  string  `json:"personName,omitempty"`
	ShareAmount float64 `json:"shareAmount"`
	IsPaid      bool    `json:"isPaid"`
}

// Bill is a shared expense with derived settlement state.
type Bill struct {
	ID           string         `json:"id"`
	Description  string         `json:"description"`
	TotalAmount  float64        `json:"totalAmount"`
	Date         string         `json:"date"`
	PayerID      string         `json:"payerId"`
	Participants []*Participant `json:"participants"`
	CreatedAt    int64          `json:"createdAt"`

	IsSettled   bool    `json:"isSettled"`
	Outstanding float64 `json:"outstanding"`
	PaidByOwner bool    `json:"paidByOwner"`

	// Unallocated is the owner's own share: total minus participant shares.
	Unallocated float64 `json:"unallocated"`
}

// BillInput carries the editable fields of a bill.
type BillInput struct {
	Description  string         `json:"description"`
	TotalAmount  float64        `json:"totalAmount"`
	Date         string         `json:"date"`
	PayerID      string         `json:"payerId"`
	Participants []*Participant `json:"participants"`

	// SplitEqually overwrites every share with total / participants.
	SplitEqually bool `json:"splitEqually"`
}

type CreateBillRequest struct {
	Bill *BillInput `json:"bill"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillRequest struct {
	ID string `json:"id"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

type UpdateBillRequest struct {
	ID   string     `json:"id"`
	Bill *BillInput `json:"bill"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	ID string `json:"id"`
}

type DeleteBillResponse struct{}

type SetParticipantPaidRequest struct {
	BillID   string `json:"billId"`
	PersonID string `json:"personId"`
	IsPaid   bool   `json:"isPaid"`
}

type SetParticipantPaidResponse struct {
	Bill *Bill `json:"bill"`
}

type SplitEquallyRequest struct {
	TotalAmount      float64 `json:"totalAmount"`
	ParticipantCount int     `json:"participantCount"`
}

type SplitEquallyResponse struct {
	ShareAmount float64 `json:"shareAmount"`
}
