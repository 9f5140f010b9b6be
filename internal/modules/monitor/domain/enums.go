//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Outcome is how an edit event was resolved
// ENUM(ignored,no_binding,exempt,within_grace,exemption_error,publish_failed,audited)
type Outcome string
