package models

// OrderRequest represents an incoming order request. The same productId
// may appear in more than one line item; duplicates are additive.
type OrderRequest struct {
	Items []LineItem `json:"orderItems"`
}

// LineItem is a single (product, quantity) pair in an order request
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CustomerInfo is the caller identity decoded from the bearer token by
// the identity collaborator. The order core treats it as opaque input
// and copies it into the order's snapshots.
type CustomerInfo struct {
	ConsumerID    string `json:"consumerId"`
	FullName      string `json:"fullName"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	Country       string `json:"country"`
	StreetAddress string `json:"streetAddress"`
	Region        string `json:"region"`
	PostalCode    string `json:"postalCode"`
	Locality      string `json:"locality"`
}
