package api

// Person is a contact of the signed-in user.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Relation  string `json:"relation,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Balance is a money summary. Net > 0 means the user will receive.
type Balance struct {
	Given    float64 `json:"given"`
	Received float64 `json:"received"`
	Net      float64 `json:"net"`

	// Status is "owed", "owing" or "square".
	Status string `json:"status"`

	// StatusText is the localized status line, e.g. "You will receive 300.00".
	StatusText string `json:"statusText"`
}

// PersonBalance pairs a contact with their balance.
type PersonBalance struct {
	Person     *Person  `json:"person"`
	Balance    *Balance `json:"balance"`
	EntryCount int      `json:"entryCount"`
}

type CreatePersonRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Notes    string `json:"notes"`
}

type CreatePersonResponse struct {
	Person *Person `json:"person"`
}

type GetPersonRequest struct {
	ID string `json:"id"`
}

type GetPersonResponse struct {
	Person  *Person  `json:"person"`
	Balance *Balance `json:"balance"`
}

type ListPeopleRequest struct {
	// Search filters by name, case-insensitively.
	Search string `json:"search"`
}

type ListPeopleResponse struct {
	People []*PersonBalance `json:"people"`
}

type UpdatePersonRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Notes    string `json:"notes"`
}

type UpdatePersonResponse struct {
	Person *Person `json:"person"`
}

type DeletePersonRequest struct {
	ID string `json:"id"`
}

type DeletePersonResponse struct {
	EntriesDeleted int `json:"entriesDeleted"`
	BillsUpdated   int `json:"billsUpdated"`
	BillsDeleted   int `json:"billsDeleted"`
}
