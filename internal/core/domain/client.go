package domain

// Client represents a customer of the freelancer. Clients have no status
// lifecycle; they are plain address-book rows referenced by the billable
// entities.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (UUID)
	UserID   string `json:"userID"`   // Owner FK -> users.user_id
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TaxID    string `json:"taxID"` // NIF/CIF, stored verbatim
	Address  string `json:"address"`
	AuditFields
}

func (c Client) SearchFields() []string {
	return []string{c.Name, c.Email, c.TaxID}
}

func (c Client) StatusValue() string { return "" }
