package storage

import (
	"bytes"
	"encoding/json"

	"github.com/tripmoa/tripledger/internal/models"
)

// EncodeRecord serializes one entry for persistence.
func EncodeRecord(entry models.ExpenseEntry) ([]byte, error) {
	return json.Marshal(entry)
}

// DecodeRecord validates and normalizes one raw persisted record. It
// applies the same rules the ledger store applies on ingestion, so
// persisted and freshly created entries are indistinguishable:
//
//   - hard reject (ok=false) when id is missing or not an integer
//     number, date or title is not a string, cost is not a non-negative
//     integer number, or payer is not a roster member;
//   - category and method coerce to "" when absent or non-string;
//   - involved coerces to the full roster when absent, not a list, or
//     empty after filtering out unknown members; duplicates collapse;
//   - receipt and fileName coerce to nil when absent or non-string.
func DecodeRecord(data []byte, roster models.Roster) (models.ExpenseEntry, bool) {
	var entry models.ExpenseEntry

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return entry, false
	}

	id, ok := intField(raw, "id")
	if !ok {
		return entry, false
	}
	date, ok := raw["date"].(string)
	if !ok {
		return entry, false
	}
	title, ok := raw["title"].(string)
	if !ok {
		return entry, false
	}
	cost, ok := intField(raw, "cost")
	if !ok || cost < 0 {
		return entry, false
	}
	payer, ok := raw["payer"].(string)
	if !ok || !roster.Contains(models.Member(payer)) {
		return entry, false
	}

	entry = models.ExpenseEntry{
		ID:       id,
		Date:     date,
		Title:    title,
		Cost:     cost,
		Category: stringField(raw, "category"),
		Payer:    models.Member(payer),
		Method:   stringField(raw, "method"),
		Involved: roster.Normalize(memberList(raw["involved"])),
		Receipt:  optionalField(raw, "receipt"),
		FileName: optionalField(raw, "fileName"),
	}
	return entry, true
}

func intField(raw map[string]any, key string) (int64, bool) {
	num, ok := raw[key].(json.Number)
	if !ok {
		return 0, false
	}
	n, err := num.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func optionalField(raw map[string]any, key string) *string {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func memberList(value any) []models.Member {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	members := make([]models.Member, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			members = append(members, models.Member(s))
		}
	}
	return members
}
