package domain

// FindForNotification decides which outage, if any, the user should be told
// about this run. Outages are scanned in the given order and the first one
// covering the user's address wins; later covering outages are never
// considered. If that first match is content-equal to what the user already
// knows, nothing is due — repeated polls of the same unresolved outage stay
// silent without any extra bookkeeping.
func FindForNotification(user User, outages []Outage) (Outage, bool) {
	for _, o := range outages {
		if !o.Affects(user.Address) {
			continue
		}
		if user.AlreadyNotifiedAbout(o.Info()) {
			return Outage{}, false
		}
		return o, true
	}
	return Outage{}, false
}
