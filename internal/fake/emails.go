package fake

import "fmt"

// Emails hands out unique addresses under one domain, suffixing a counter on
// collision.
type Emails struct {
	domain string
	seen   map[string]int
}

// NewEmails creates a registry for domain, pre-seeded with taken addresses.
func NewEmails(domain string, taken ...string) *Emails {
	e := &Emails{domain: domain, seen: make(map[string]int, len(taken))}
	for _, t := range taken {
		e.seen[t] = 1
	}
	return e
}

// Next returns first.last@domain, or first.lastN@domain if that is taken.
func (e *Emails) Next(first, last string) string {
	local := Slug(first, last)
	base := local + "@" + e.domain
	if e.seen[base] == 0 {
		e.seen[base] = 1
		return base
	}
	for {
		e.seen[base]++
		addr := fmt.Sprintf("%s%d@%s", local, e.seen[base], e.domain)
		if e.seen[addr] == 0 {
			e.seen[addr] = 1
			return addr
		}
	}
}
