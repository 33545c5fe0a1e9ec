package renderdraft

import (
	"fmt"
	"strings"
)

const gstReplySkeleton = `
To
The Proper Officer
GST Department

Subject: Reply to {{notice_type}} issued under Section {{section}}
Financial Year: {{financial_year}}

Respected Sir/Madam,

This is in reference to the above-mentioned notice issued to
{{taxpayer_name}}{{gstin_clause}}.

The notice states the following issue:
{{issue_summary}}

At the outset, the taxpayer submits that all statutory
compliances have been duly complied with. Any apparent
discrepancy may be due to clerical or reconciliation differences,
which are explainable with supporting records. This reply is
submitted in a {{tone}} manner.

The taxpayer humbly requests your good office to kindly
consider this reply and grant an opportunity of being heard
before passing any adverse order.

Enclosures: {{supporting_documents}}

Thanking you.

Yours faithfully,
Authorized Signatory
`

// skeletons is keyed by normalized law code.
var skeletons = map[string]string{
	"GST": gstReplySkeleton,
}

func init() {
	for law, skeleton := range skeletons {
		if unknown := UnknownPlaceholders(skeleton); len(unknown) > 0 {
			panic(fmt.Sprintf("render-draft: %s skeleton has unknown placeholders %v", law, unknown))
		}
	}
}

// SkeletonFor returns the letter skeleton for law.
func SkeletonFor(law string) (string, bool) {
	s, ok := skeletons[strings.ToUpper(strings.TrimSpace(law))]
	return s, ok
}
