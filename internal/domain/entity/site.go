package entity

// Site is a partition of like data, one per deployment of the same content.
type Site struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}
