package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

var recordIDPrefixes = map[domain.Intent]string{
	domain.IntentInvoice:    "INV",
	domain.IntentQuote:      "QUO",
	domain.IntentCustomer:   "CLI",
	domain.IntentJob:        "JOB",
	domain.IntentExpense:    "EXP",
	domain.IntentManualTask: "TSK",
}

var recordStatuses = map[domain.Intent]string{
	domain.IntentInvoice:    "draft",
	domain.IntentQuote:      "draft",
	domain.IntentCustomer:   "active",
	domain.IntentJob:        "scheduled",
	domain.IntentExpense:    "recorded",
	domain.IntentManualTask: "scheduled",
}

// finalizeRecord stamps the accumulated data into a presentable record:
// a readable per-kind id, a lifecycle status and a creation timestamp.
func finalizeRecord(intent domain.Intent, data domain.Record, now time.Time) domain.Record {
	rec := data.Clone()
	if rec.GetString("id") == "" {
		prefix := recordIDPrefixes[intent]
		if prefix == "" {
			prefix = "REC"
		}
		short := strings.SplitN(uuid.NewString(), "-", 2)[0]
		rec["id"] = fmt.Sprintf("%s-%d-%s", prefix, now.Year(), short)
	}
	if rec.GetString("status") == "" {
		rec["status"] = recordStatuses[intent]
	}
	rec["created_at"] = now.UTC().Format(time.RFC3339)
	return rec
}
