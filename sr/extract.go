package sr

// ObservationUIDs collects the observation UIDs of the items two levels
// below each anchor: the direct children of every finding group under an
// "Image Measurements" container. Items at other depths are not
// considered and items without an observation UID are skipped. The result
// is in document order and may contain duplicates.
func ObservationUIDs(items []*ContentItem) []string {
	var uids []string
	for _, anchor := range items {
		if anchor == nil || anchor.Meaning() != AnchorMeaning {
			continue
		}
		for _, group := range anchor.Children {
			if group == nil || !group.HasChildren() {
				continue
			}
			for _, item := range group.Children {
				if item != nil && item.ObservationUID != "" {
					uids = append(uids, item.ObservationUID)
				}
			}
		}
	}
	return uids
}

// ObservationUIDs returns the observation UIDs of the document's findings.
func (d *Document) ObservationUIDs() []string {
	return ObservationUIDs(d.Content)
}
