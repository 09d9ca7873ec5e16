package forum

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
	"github.com/GianniRod/Real-Futbol/internal/store"
)

// Moderation is the policy engine behind delete, mute, ban and role
// assignment. Every entry point resolves the acting user's role once and
// checks the permission table; read paths degrade to safe defaults on store
// errors while write failures surface to the caller untouched.
type Moderation struct {
	users    UserDirectory
	messages MessageStore
	records  ModerationStore
	resolver *Resolver
	live     *store.Live

	// now is injectable so expiry tests can pin the clock
	now func() time.Time
}

func NewModeration(users UserDirectory, messages MessageStore, records ModerationStore, resolver *Resolver, live *store.Live) *Moderation {
	return &Moderation{
		users:    users,
		messages: messages,
		records:  records,
		resolver: resolver,
		live:     live,
		now:      time.Now,
	}
}

// ResolveRole returns the role for a user id, degrading to RoleUser on any
// lookup failure.
func (m *Moderation) ResolveRole(userID uuid.UUID) Role {
	return m.resolver.Resolve(userID)
}

// DeleteMessage soft-deletes a message, keeping the row for the audit trail
// and for clients holding the id mid-fetch.
func (m *Moderation) DeleteMessage(messageID, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionDeleteMessage) {
		return fmt.Errorf("delete message: %w", ErrPermissionDenied)
	}

	msg, err := m.messages.GetByID(messageID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if err := m.messages.SoftDelete(messageID, actingUser, m.now()); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	m.notify(store.MessagesChannel(msg.Context))
	return nil
}

// MuteUser silences a user for durationMinutes. Re-muting overwrites the
// previous record instead of extending it.
func (m *Moderation) MuteUser(username string, durationMinutes int, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionMute) {
		return fmt.Errorf("mute %q: %w", username, ErrPermissionDenied)
	}

	target, err := m.resolveUsername(username)
	if err != nil {
		return err
	}
	if target.ID == m.resolver.DeveloperUID() {
		// the developer account is un-moderatable
		return fmt.Errorf("mute %q: %w", username, ErrPermissionDenied)
	}

	now := m.now()
	mute := &models.MuteRecord{
		UserID:          target.ID,
		Username:        target.Username,
		MutedAt:         now,
		ExpiresAt:       now.Add(time.Duration(durationMinutes) * time.Minute),
		DurationMinutes: durationMinutes,
	}
	if err := m.records.UpsertMute(mute); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// UnmuteUser deletes the mute record. Valid on an absent or already-expired
// record.
func (m *Moderation) UnmuteUser(userID, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionMute) {
		return fmt.Errorf("unmute: %w", ErrPermissionDenied)
	}
	if err := m.records.DeleteMute(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// IsMuted reports whether a user is currently muted. An expired record is
// purged on read; there is no background sweep. Lookup failures degrade to
// "not muted" so a store outage restricts nobody.
func (m *Moderation) IsMuted(userID uuid.UUID) bool {
	mute, err := m.records.GetMute(userID)
	if err != nil || mute == nil {
		return false
	}
	if mute.ExpiresAt.Before(m.now()) {
		if err := m.records.DeleteMute(userID); err != nil {
			log.Printf("failed to purge expired mute for %s: %v", userID, err)
		}
		return false
	}
	return true
}

// MuteTimeRemaining renders the remaining mute time for display. Purely
// derived; it never purges.
func (m *Moderation) MuteTimeRemaining(userID uuid.UUID) (string, bool) {
	mute, err := m.records.GetMute(userID)
	if err != nil || mute == nil {
		return "", false
	}
	remaining := mute.ExpiresAt.Sub(m.now())
	if remaining <= 0 {
		return "", false
	}
	return FormatMuteRemaining(remaining), true
}

// BanUser writes a permanent ban and clears any mute, since a ban supersedes
// it.
func (m *Moderation) BanUser(username string, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionBan) {
		return fmt.Errorf("ban %q: %w", username, ErrPermissionDenied)
	}

	target, err := m.resolveUsername(username)
	if err != nil {
		return err
	}
	if target.ID == m.resolver.DeveloperUID() {
		return fmt.Errorf("ban %q: %w", username, ErrPermissionDenied)
	}

	ban := &models.BanRecord{
		UserID:   target.ID,
		Username: target.Username,
		BannedAt: m.now(),
	}
	if err := m.records.UpsertBan(ban); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := m.records.DeleteMute(target.ID); err != nil {
		return fmt.Errorf("%w: ban recorded but mute not cleared: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// UnbanUser deletes the ban record. Idempotent.
func (m *Moderation) UnbanUser(userID, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionBan) {
		return fmt.Errorf("unban: %w", ErrPermissionDenied)
	}
	if err := m.records.DeleteBan(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// IsBanned is a presence check, no expiry. Lookup failures degrade to
// "not banned".
func (m *Moderation) IsBanned(userID uuid.UUID) bool {
	ban, err := m.records.GetBan(userID)
	if err != nil {
		return false
	}
	return ban != nil
}

// AddModerator enters a user into the moderator registry and flips the
// stored profile role. Developer only.
func (m *Moderation) AddModerator(userID, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionManageModerators) {
		return fmt.Errorf("add moderator: %w", ErrPermissionDenied)
	}
	if userID == m.resolver.DeveloperUID() {
		// the developer already has maximal rights
		return fmt.Errorf("add moderator: %w", ErrInvalidOperation)
	}

	profile, err := m.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("add moderator: %w", ErrUserNotFound)
	}

	entry := &models.ModeratorEntry{
		UserID:   userID,
		Username: profile.Username,
		AddedBy:  actingUser,
		AddedAt:  m.now(),
	}
	if err := m.records.UpsertModerator(entry); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := m.users.UpdateRole(userID, string(RoleModerator)); err != nil {
		return fmt.Errorf("%w: moderator registered but profile role not updated: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// RemoveModerator deletes the registry entry and resets the profile role.
// When the second step fails the registry entry is already gone, so the
// error names the inconsistency instead of hiding it.
func (m *Moderation) RemoveModerator(userID, actingUser uuid.UUID) error {
	if !Can(m.resolver.Resolve(actingUser), ActionManageModerators) {
		return fmt.Errorf("remove moderator: %w", ErrPermissionDenied)
	}

	if err := m.records.DeleteModerator(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if err := m.users.UpdateRole(userID, string(RoleUser)); err != nil {
		return fmt.Errorf("%w: moderator entry removed but profile role not reset: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// ListModerators returns the registry for the admin view
func (m *Moderation) ListModerators() ([]models.ModeratorEntry, error) {
	entries, err := m.records.ListModerators()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return entries, nil
}

// resolveUsername scans the profile set for a case-insensitive exact match.
// Usernames are not a unique-indexed key, so this is a linear lookup on
// purpose; the first match wins.
func (m *Moderation) resolveUsername(username string) (*models.UserProfile, error) {
	profiles, err := m.users.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	for i := range profiles {
		if strings.EqualFold(profiles[i].Username, username) {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("resolve %q: %w", username, ErrUserNotFound)
}

func (m *Moderation) notify(collection string) {
	if m.live == nil {
		return
	}
	if err := m.live.NotifyChanged(collection); err != nil {
		log.Printf("failed to notify %s: %v", collection, err)
	}
}
