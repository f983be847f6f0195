package models

// Contact is the address-book payload carried by an [Item].
type Contact struct {
	// FamilyName and GivenName form the structured name (vCard N).
	FamilyName string `json:"family_name"`
	GivenName  string `json:"given_name"`

	// DisplayName is the formatted name (vCard FN).
	DisplayName string `json:"display_name"`

	Organization string   `json:"organization,omitempty"`
	Phones       []string `json:"phones,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	Note         string   `json:"note,omitempty"`
}

// Item is a synchronizable record owned by the platform record store.
//
// ID is assigned by the store and never changes. Version is an opaque token
// that changes whenever the content changes; it is only ever compared for
// equality.
type Item struct {
	ID      string  `json:"id"`
	Version string  `json:"version"`
	Contact Contact `json:"contact"`
}

// ItemVersion is the lightweight (id, version) pair produced when the record
// store enumerates its live items.
type ItemVersion struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}
