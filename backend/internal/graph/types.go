package graph

// Person represents a person node in the graph.
//
// Name is the natural key and is never empty. Every other field is optional;
// zero values mean "absent" and are written as nulls so the stored shape is
// uniform. Birthday is deliberately untyped: depending on how the value was
// written it comes back from the driver as a plain string, a date value, or
// a {year, month, day} map.
type Person struct {
	Name       string `json:"name"`
	Age        int64  `json:"age,omitempty"`
	Location   string `json:"location,omitempty"`
	Birthday   any    `json:"birthday,omitempty"`
	Info       string `json:"info,omitempty"`
	Occupation string `json:"occupation,omitempty"`
}

// Relationship represents a directed typed edge between two person nodes
type Relationship struct {
	Person1     string `json:"person1"`
	Person2     string `json:"person2"`
	Type        string `json:"relationship"`
	Since       string `json:"since,omitempty"`
	Description string `json:"description,omitempty"`
}

// RelationshipProps holds the optional properties of an edge
type RelationshipProps struct {
	Since       string `json:"since,omitempty"`
	Description string `json:"description,omitempty"`
}
