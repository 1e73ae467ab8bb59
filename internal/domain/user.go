package domain

// User is a subscriber: a Telegram chat bound to one address, plus the last
// outage the user was notified about (nil until the first notification).
type User struct {
	ChatID     int64
	Address    UserAddress
	OutageInfo *OutageInfo
}

// WithNotifiedOutage returns a copy of the user remembering the given outage.
// At most one outage is remembered; sending a new notification overwrites it.
func (u User) WithNotifiedOutage(o Outage) User {
	info := o.Info()
	return User{
		ChatID:     u.ChatID,
		Address:    u.Address,
		OutageInfo: &info,
	}
}

// AlreadyNotifiedAbout reports whether the user's remembered outage matches
// the given snapshot by content.
func (u User) AlreadyNotifiedAbout(info OutageInfo) bool {
	return u.OutageInfo != nil && u.OutageInfo.Equals(info)
}
