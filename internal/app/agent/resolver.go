package agent

import (
	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// maxMissingDataAttempts bounds how many follow-up questions the engine
// asks for one record before default-filling whatever is still absent.
const maxMissingDataAttempts = 3

// hasField reports whether the record satisfies a required field, directly
// or through one of its synonyms. Synonym keys are canonicalized before
// lookup because session data only ever holds canonical keys.
func hasField(data domain.Record, field string) bool {
	if isMeaningful(data[field]) {
		return true
	}
	for _, syn := range fieldSynonyms[field] {
		if isMeaningful(data[CanonicalKey(syn)]) {
			return true
		}
	}
	return false
}

// missingFields lists the required fields the record does not yet satisfy,
// in the intent's declaration order.
func missingFields(intent domain.Intent, data domain.Record) []string {
	var missing []string
	for _, field := range requiredFields[intent] {
		if !hasField(data, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// missingGetFields reports what a retrieval still needs: a query marked
// specific_id must carry the id before it can run.
func missingGetFields(data domain.Record) []string {
	if data.GetString("query_type") == "specific_id" && data.GetString("id") == "" {
		return []string{"id"}
	}
	return nil
}

// fillDefaults writes type-appropriate defaults for every still-missing
// required field, so the record can be finalized after the attempt
// ceiling. Present fields are never touched.
func fillDefaults(intent domain.Intent, data domain.Record) domain.Record {
	if data == nil {
		data = domain.Record{}
	}
	for _, field := range missingFields(intent, data) {
		data[field] = defaultFor(field)
	}
	return data
}
