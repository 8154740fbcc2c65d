package ledger

// Stats maps a classification bucket to its count. The "no event" category
// is a bucket of its own; every other category contributes one bucket per
// subcategory, named "{category}_{subcategory}". Buckets that reach zero
// are deleted, so a Stats kept up to date incrementally always compares
// equal to a fresh Recompute over the same records.
type Stats map[string]int

// Bucket returns the statistics bucket this record counts toward.
func (r Record) Bucket() string {
	if r.CategoryID == NoEventID {
		return r.CategoryName
	}
	return r.CategoryName + "_" + r.SubcategoryName
}

// Recompute derives statistics from scratch over a full record set.
func Recompute(records map[string]Record) Stats {
	s := make(Stats, len(records))
	for _, r := range records {
		s[r.Bucket()]++
	}
	return s
}

func (s Stats) add(r Record) {
	s[r.Bucket()]++
}

func (s Stats) remove(r Record) {
	key := r.Bucket()
	if s[key] <= 1 {
		delete(s, key)
		return
	}
	s[key]--
}

func (s Stats) clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Total returns the number of classified frames.
func (s Stats) Total() int {
	n := 0
	for _, count := range s {
		n += count
	}
	return n
}

// CategoryTotal sums every bucket belonging to cat.
func (s Stats) CategoryTotal(cat Category) int {
	if cat.ID == NoEventID {
		return s[cat.Name]
	}
	n := 0
	for _, sub := range Subcategories {
		n += s[cat.Name+"_"+sub.Name]
	}
	return n
}
