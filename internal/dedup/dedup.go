// Package dedup collapses postings that refer to the same real job.
package dedup

import "github.com/jonathan/job-aggregator/internal/types"

// Deduplicate removes duplicate postings, order-preserving and
// first-seen-wins. A posting is kept when its URL is non-empty and unseen,
// or when its lower-cased (title, company) pair is unseen; keeping a posting
// marks both of its identity keys as seen. The operation is idempotent.
func Deduplicate(postings []types.Posting) []types.Posting {
	seenURLs := make(map[string]bool)
	seenTitleCompany := make(map[string]bool)

	unique := make([]types.Posting, 0, len(postings))
	for _, p := range postings {
		pairKey := p.TitleCompanyKey()

		switch {
		case p.URL != "" && !seenURLs[p.URL]:
			// A fresh URL is always a new admission, even if the
			// title/company pair was already seen under another URL.
			seenURLs[p.URL] = true
			seenTitleCompany[pairKey] = true
			unique = append(unique, p)
		case !seenTitleCompany[pairKey]:
			seenTitleCompany[pairKey] = true
			unique = append(unique, p)
		}
	}

	return unique
}
