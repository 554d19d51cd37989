package record

// Record is a loosely-shaped JSON object as returned by the external store.
// Field names vary between records, so values are read through Keys lists
// rather than fixed struct fields.
type Record map[string]any

// Keys is an ordered list of candidate field spellings. Lookups try each key
// in order and take the first one that holds a usable value.
type Keys []string
