package api

// Entry is one recorded gift exchange. Dates are YYYY-MM-DD.
type Entry struct {
	ID          string   `json:"id"`
	PersonID    string   `json:"personId"`
	PersonName  string   `json:"personName"`
	Direction   string   `json:"direction"`
	Date        string   `json:"date"`
	Event       string   `json:"event"`
	GiftType    string   `json:"giftType"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Notes       string   `json:"notes,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
}

// EntryInput carries the editable fields of an entry.
type EntryInput struct {
	PersonID    string   `json:"personId"`
	Direction   string   `json:"direction"`
	Date        string   `json:"date"`
	Event       string   `json:"event"`
	GiftType    string   `json:"giftType"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Notes       string   `json:"notes"`
}

// Breakdown buckets totals by gift type and direction.
type Breakdown struct {
	MoneyGiven         float64 `json:"moneyGiven"`
	MoneyReceived      float64 `json:"moneyReceived"`
	SweetsGivenKg      float64 `json:"sweetsGivenKg"`
	SweetsReceivedKg   float64 `json:"sweetsReceivedKg"`
	GiftsGivenCount    int     `json:"giftsGivenCount"`
	GiftsReceivedCount int     `json:"giftsReceivedCount"`
}

type CreateEntryRequest struct {
	Entry *EntryInput `json:"entry"`
}

type CreateEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type GetEntryRequest struct {
	ID string `json:"id"`
}

type GetEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type ListEntriesRequest struct {
	PersonID  string `json:"personId"`
	Event     string `json:"event"`
	Direction string `json:"direction"`
	Search    string `json:"search"`
}

type ListEntriesResponse struct {
	Entries []*Entry `json:"entries"`
}

type UpdateEntryRequest struct {
	ID    string      `json:"id"`
	Entry *EntryInput `json:"entry"`
}

type UpdateEntryResponse struct {
	Entry *Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type DeleteEntryResponse struct{}

type GetBalanceRequest struct {
	// PersonID limits the balance to one contact; empty means everyone.
	PersonID string `json:"personId"`
}

type GetBalanceResponse struct {
	Balance   *Balance   `json:"balance"`
	Breakdown *Breakdown `json:"breakdown"`
}
