package monday

// Board is a remote collection of tasks with a shared column schema
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Column describes a typed field on a board
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// User is a board subscriber
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// item mirrors the items_page entry shape of the board fetch query
type item struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ColumnValues []struct {
		ID    string `json:"id"`
		Text  string `json:"text"`
		Value string `json:"value"`
	} `json:"column_values"`
}
