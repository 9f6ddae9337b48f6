// Package schema declares the applicant record shape consumed by the
// import pipeline. It is the single source of truth for field kinds,
// text length limits and the human-readable header aliases accepted
// from uploaded files, so header resolution and truncation never
// diverge.
package schema

import "strings"

// FieldKind is the semantic type of an applicant field.
type FieldKind int

const (
	ShortText FieldKind = iota
	LongText
	DateTime
)

// Field describes one applicant column.
type Field struct {
	// Key is the canonical field key used internally and in the store.
	Key string
	// Kind drives coercion behaviour.
	Kind FieldKind
	// MaxLen bounds text values; zero means unbounded (long text).
	MaxLen int
	// Aliases are the verbose survey-question headers seen in source
	// spreadsheets that map onto this field.
	Aliases []string
}

var fields = []Field{
	{Key: "application_id", Kind: ShortText, MaxLen: 50},
	{Key: "program_key", Kind: ShortText, MaxLen: 50},
	{Key: "nd_title", Kind: ShortText, MaxLen: 512},
	{Key: "user_id", Kind: ShortText, MaxLen: 50},
	{Key: "first_name", Kind: ShortText, MaxLen: 100},
	{Key: "last_name", Kind: ShortText, MaxLen: 100},
	{Key: "email", Kind: ShortText, MaxLen: 254},
	{Key: "nd_key", Kind: ShortText, MaxLen: 50},
	{Key: "company_id", Kind: ShortText, MaxLen: 50},
	{Key: "company_name", Kind: ShortText, MaxLen: 512},
	{Key: "country_at_registration", Kind: ShortText, MaxLen: 100},
	{Key: "application_status", Kind: ShortText, MaxLen: 100},
	{Key: "application_submitted_at", Kind: DateTime},
	{Key: "application_created_at", Kind: DateTime},
	{Key: "applicant_updated_at", Kind: DateTime},
	{Key: "heard_about_program", Kind: ShortText, MaxLen: 512,
		Aliases: []string{"How did you hear about this program?"}},
	{Key: "experience_years", Kind: ShortText, MaxLen: 50,
		Aliases: []string{"How many years of professional experience do you have?"}},
	{Key: "terms_agreement", Kind: ShortText, MaxLen: 50,
		Aliases: []string{"I confirm that the information I have provided above is accurate and I agree to the terms and conditions"}},
	{Key: "employer_name", Kind: ShortText, MaxLen: 512,
		Aliases: []string{"If employed, what is the name of your employer?"}},
	{Key: "age", Kind: ShortText, MaxLen: 50,
		Aliases: []string{"Please confirm your age"}},
	{Key: "phone_number", Kind: ShortText, MaxLen: 50,
		Aliases: []string{"Please confirm your phone number"}},
	{Key: "nationality", Kind: ShortText, MaxLen: 100,
		Aliases: []string{"Please indicate your country of nationality"}},
	{Key: "region", Kind: ShortText, MaxLen: 100,
		Aliases: []string{"Please indicate your region"}},
	{Key: "education_level", Kind: ShortText, MaxLen: 512,
		Aliases: []string{"What is the highest level of education you have completed?"}},
	{Key: "education_institution", Kind: ShortText, MaxLen: 512,
		Aliases: []string{"What is the name of your education institution"}},
	{Key: "employment_status", Kind: ShortText, MaxLen: 100,
		Aliases: []string{"What is your current employment status?"}},
	{Key: "field_of_study", Kind: ShortText, MaxLen: 100,
		Aliases: []string{"What is your field of study?"}},
	{Key: "gender", Kind: ShortText, MaxLen: 50,
		Aliases: []string{"What is your gender?"}},
	{Key: "primary_reason", Kind: LongText,
		Aliases: []string{"What is your primary reason for enrolling in this program?"}},
}

var (
	byKey      map[string]Field
	aliasToKey map[string]string
)

func init() {
	byKey = make(map[string]Field, len(fields))
	aliasToKey = make(map[string]string)
	for _, f := range fields {
		byKey[f.Key] = f
		for _, alias := range f.Aliases {
			aliasToKey[NormalizeHeader(alias)] = f.Key
		}
	}
}

// Fields returns the declared applicant fields in schema order.
func Fields() []Field {
	return fields
}

// Lookup returns the descriptor for a canonical field key.
func Lookup(key string) (Field, bool) {
	f, ok := byKey[key]
	return f, ok
}

// NormalizeHeader converts a raw spreadsheet header into a candidate
// field key: trimmed, lowercased, spaces to underscores, '?' stripped.
// The operation is idempotent.
func NormalizeHeader(raw string) string {
	h := strings.TrimSpace(raw)
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "_")
	return strings.ReplaceAll(h, "?", "")
}

// NormalizeHeaders normalizes an ordered header row, preserving column
// positions.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// ResolveAliases renames entries keyed by a normalized alias to the
// canonical field key. A canonical key already present wins; the alias
// entry is dropped rather than overwriting it. Running the resolution
// twice is a no-op.
func ResolveAliases(row map[string]interface{}) {
	for alias, key := range aliasToKey {
		val, ok := row[alias]
		if !ok {
			continue
		}
		delete(row, alias)
		if _, exists := row[key]; !exists {
			row[key] = val
		}
	}
}
