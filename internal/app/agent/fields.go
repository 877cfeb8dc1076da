package agent

import (
	"strings"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// Static field metadata: key canonicalization, nested section names,
// per-intent required fields, synonym lookup and default fill values.
// Pure data, no state.

// fieldAliases maps normalized key variants to their canonical name.
// Lookup happens after normalizeKey, so only snake_case forms appear here.
var fieldAliases = map[string]string{
	"client_name":       "customer_name",
	"client":            "customer_name",
	"client_email":      "customer_email",
	"client_phone":      "customer_phone",
	"client_address":    "customer_address",
	"email_address":     "customer_email",
	"phone_number":      "customer_phone",
	"line_items":        "items",
	"grand_total":       "total_amount",
	"total":             "total_amount",
	"estimated_amount":  "estimated_total",
	"quote_total":       "estimated_total",
	"vat":               "vat_rate",
	"tax":               "tax_rate",
	"job_title":         "title",
	"task_title":        "title",
	"subject":           "title",
	"due":               "due_date",
	"scheduled":         "scheduled_date",
	"duration_hours":    "duration",
	"expense_amount":    "amount",
	"expense_date":      "date",
	"expense_category":  "category",
	"start":             "start_time",
	"end":               "end_time",
	"supplier":          "vendor",
	"object_id":         "id",
	"record_id":         "id",
	"company_name":      "company",
	"full_name":         "name",
	"postal_code":       "project_zip_code",
	"zip_code":          "project_zip_code",
	"language":          "language_preference",
}

// sectionNames are nested group labels produced by extraction that must be
// flattened into the top-level record rather than kept as sub-objects.
var sectionNames = map[string]bool{
	"extracted_data":           true,
	"client_information":       true,
	"customer_information":     true,
	"contact_information":      true,
	"project_details":          true,
	"quote_details":            true,
	"invoice_details":          true,
	"job_details":              true,
	"task_details":             true,
	"expense_details":          true,
	"discount_information":     true,
	"down_payment_information": true,
	"tax_and_totals":           true,
	"dates":                    true,
	"notes_section":            true,
}

// requiredFields lists what each intent needs before a record can be
// finalized. GET operations are handled separately by the resolver.
var requiredFields = map[domain.Intent][]string{
	domain.IntentInvoice:    {"customer_name", "customer_email", "items", "total_amount"},
	domain.IntentQuote:      {"customer_name", "customer_email", "services", "estimated_total"},
	domain.IntentCustomer:   {"name", "email", "phone", "address"},
	domain.IntentJob:        {"title", "customer_name", "scheduled_date", "duration"},
	domain.IntentExpense:    {"description", "amount", "date", "category"},
	domain.IntentManualTask: {"title", "start_time", "end_time"},
}

// fieldSynonyms maps a required field to the alternative canonical keys
// that also satisfy it. A field counts as present if any synonym holds a
// meaningful value.
var fieldSynonyms = map[string][]string{
	"customer_name":   {"client_name", "clientName", "name"},
	"customer_email":  {"client_email", "clientEmail", "email"},
	"items":           {"services", "line_items"},
	"services":        {"items", "line_items"},
	"total_amount":    {"total", "grand_total", "amount"},
	"estimated_total": {"total_amount", "total", "quote_total"},
	"name":            {"customer_name", "client_name", "full_name"},
	"email":           {"customer_email", "client_email", "email_address"},
	"phone":           {"customer_phone", "phone_number", "client_phone"},
	"address":         {"customer_address", "client_address"},
	"title":           {"job_title", "task_title", "subject", "description"},
	"scheduled_date":  {"date", "scheduled_time", "start_time"},
	"duration":        {"duration_hours", "estimated_hours"},
	"description":     {"title", "notes"},
	"amount":          {"total_amount", "expense_amount", "total"},
	"date":            {"expense_date", "scheduled_date"},
	"category":        {"expense_category", "type"},
	"start_time":      {"start", "scheduled_time", "scheduled_date"},
	"end_time":        {"end"},
}

// amountFields are force-filled with 0.0 when attempts run out; listFields
// with an empty list. Everything else gets the "N/A" placeholder.
var amountFields = map[string]bool{
	"total_amount":    true,
	"estimated_total": true,
	"amount":          true,
	"subtotal":        true,
	"tax_amount":      true,
	"vat_amount":      true,
}

var listFields = map[string]bool{
	"items":    true,
	"services": true,
}

// placeholderTokens are string values the fusion step refuses to store.
var placeholderTokens = map[string]bool{
	"":          true,
	"n/a":       true,
	"na":        true,
	"null":      true,
	"none":      true,
	"undefined": true,
}

const placeholderDefault = "N/A"

// normalizeKey folds case, spaces and hyphens so that "Client Name",
// "client-name" and "clientName" all collapse to the same form.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)

	var b strings.Builder
	b.Grow(len(key) + 4)
	var prevLower bool
	for _, r := range key {
		switch {
		case r == ' ' || r == '-' || r == '\t':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			prevLower = false
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		}
	}
	return b.String()
}

// CanonicalKey returns the canonical field name for a raw extraction key.
func CanonicalKey(raw string) string {
	norm := normalizeKey(raw)
	if canonical, ok := fieldAliases[norm]; ok {
		return canonical
	}
	return norm
}

// isSectionName reports whether a raw key names a nested group that should
// be flattened into the top level.
func isSectionName(raw string) bool {
	return sectionNames[normalizeKey(raw)]
}

// defaultFor picks the type-appropriate default used when the attempt
// ceiling is reached with the field still missing.
func defaultFor(field string) any {
	switch {
	case amountFields[field]:
		return 0.0
	case listFields[field]:
		return []any{}
	default:
		return placeholderDefault
	}
}

// fieldLabels holds the human-readable field names used in follow-up
// questions, per language.
var fieldLabels = map[string]map[string]string{
	"en": {
		"customer_name":   "customer name",
		"customer_email":  "customer email",
		"items":           "items or services",
		"total_amount":    "total amount",
		"services":        "services or items",
		"estimated_total": "estimated total",
		"name":            "name",
		"email":           "email address",
		"phone":           "phone number",
		"address":         "address",
		"title":           "title",
		"scheduled_date":  "scheduled date",
		"duration":        "duration",
		"description":     "description",
		"amount":          "amount",
		"date":            "date",
		"category":        "category",
		"start_time":      "start time",
		"end_time":        "end time",
		"id":              "record id",
	},
	"fr": {
		"customer_name":   "nom du client",
		"customer_email":  "email du client",
		"items":           "articles ou services",
		"total_amount":    "montant total",
		"services":        "services ou articles",
		"estimated_total": "total estimé",
		"name":            "nom",
		"email":           "adresse email",
		"phone":           "numéro de téléphone",
		"address":         "adresse",
		"title":           "titre",
		"scheduled_date":  "date prévue",
		"duration":        "durée",
		"description":     "description",
		"amount":          "montant",
		"date":            "date",
		"category":        "catégorie",
		"start_time":      "heure de début",
		"end_time":        "heure de fin",
		"id":              "identifiant",
	},
}

func labelFor(field, language string) string {
	labels, ok := fieldLabels[language]
	if !ok {
		labels = fieldLabels["en"]
	}
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}
