package forum

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

// In-memory stand-ins for the repository layer. Each fake can be forced to
// fail to exercise the degradation paths.

type fakeUsers struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.UserProfile
	fail     bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{profiles: make(map[uuid.UUID]*models.UserProfile)}
}

func (f *fakeUsers) add(username string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.profiles[id] = &models.UserProfile{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Role:     "user",
	}
	return id
}

func (f *fakeUsers) GetByID(id uuid.UUID) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("users unavailable")
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeUsers) List() ([]models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("users unavailable")
	}
	out := []models.UserProfile{}
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeUsers) UpdateRole(id uuid.UUID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("users unavailable")
	}
	p, ok := f.profiles[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	p.Role = role
	return nil
}

func (f *fakeUsers) IncrementCommentCount(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.CommentCount++
	}
	return nil
}

type fakeMessages struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*models.Message
	fail     bool
}

func newFakeMessages() *fakeMessages {
	return &fakeMessages{messages: make(map[uuid.UUID]*models.Message)}
}

func (f *fakeMessages) Create(message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("messages unavailable")
	}
	cp := *message
	f.messages[message.ID] = &cp
	return nil
}

func (f *fakeMessages) GetByID(id uuid.UUID) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("messages unavailable")
	}
	m, ok := f.messages[id]
	if !ok {
		return nil, fmt.Errorf("message not found")
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMessages) GetByContext(context string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("messages unavailable")
	}
	out := []models.Message{}
	for _, m := range f.messages {
		if m.Context == context {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMessages) SoftDelete(id, deletedBy uuid.UUID, deletedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("messages unavailable")
	}
	m, ok := f.messages[id]
	if !ok {
		return fmt.Errorf("message not found")
	}
	m.Deleted = true
	m.DeletedBy = &deletedBy
	m.DeletedAt = &deletedAt
	return nil
}

type fakeReactions struct {
	mu        sync.Mutex
	reactions map[uuid.UUID]*models.Reaction
	fail      bool
}

func newFakeReactions() *fakeReactions {
	return &fakeReactions{reactions: make(map[uuid.UUID]*models.Reaction)}
}

func (f *fakeReactions) Create(reaction *models.Reaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("reactions unavailable")
	}
	cp := *reaction
	f.reactions[reaction.ID] = &cp
	return nil
}

func (f *fakeReactions) GetByMessageAndUser(messageID, userID uuid.UUID) (*models.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("reactions unavailable")
	}
	for _, r := range f.reactions {
		if r.MessageID == messageID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReactions) GetByMessageIDs(ids []uuid.UUID) ([]models.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("reactions unavailable")
	}
	if len(ids) > 10 {
		return nil, fmt.Errorf("IN filter accepts at most 10 values")
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []models.Reaction{}
	for _, r := range f.reactions {
		if wanted[r.MessageID] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReactions) UpdateType(id uuid.UUID, reactionType models.ReactionType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reactions[id]
	if !ok {
		return fmt.Errorf("reaction not found")
	}
	r.Type = reactionType
	return nil
}

func (f *fakeReactions) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reactions, id)
	return nil
}

func (f *fakeReactions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reactions)
}

type fakeRecords struct {
	mu         sync.Mutex
	mutes      map[uuid.UUID]*models.MuteRecord
	bans       map[uuid.UUID]*models.BanRecord
	moderators map[uuid.UUID]*models.ModeratorEntry
	fail       bool
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{
		mutes:      make(map[uuid.UUID]*models.MuteRecord),
		bans:       make(map[uuid.UUID]*models.BanRecord),
		moderators: make(map[uuid.UUID]*models.ModeratorEntry),
	}
}

func (f *fakeRecords) UpsertMute(mute *models.MuteRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("records unavailable")
	}
	cp := *mute
	f.mutes[mute.UserID] = &cp
	return nil
}

func (f *fakeRecords) GetMute(userID uuid.UUID) (*models.MuteRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("records unavailable")
	}
	m, ok := f.mutes[userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRecords) DeleteMute(userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("records unavailable")
	}
	delete(f.mutes, userID)
	return nil
}

func (f *fakeRecords) UpsertBan(ban *models.BanRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("records unavailable")
	}
	cp := *ban
	f.bans[ban.UserID] = &cp
	return nil
}

func (f *fakeRecords) GetBan(userID uuid.UUID) (*models.BanRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("records unavailable")
	}
	b, ok := f.bans[userID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRecords) DeleteBan(userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bans, userID)
	return nil
}

func (f *fakeRecords) UpsertModerator(entry *models.ModeratorEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("records unavailable")
	}
	cp := *entry
	f.moderators[entry.UserID] = &cp
	return nil
}

func (f *fakeRecords) GetModerator(userID uuid.UUID) (*models.ModeratorEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("records unavailable")
	}
	m, ok := f.moderators[userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRecords) DeleteModerator(userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("records unavailable")
	}
	delete(f.moderators, userID)
	return nil
}

func (f *fakeRecords) ListModerators() ([]models.ModeratorEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ModeratorEntry{}
	for _, m := range f.moderators {
		out = append(out, *m)
	}
	return out, nil
}

// world bundles the fakes with a ready moderation engine
type world struct {
	users     *fakeUsers
	messages  *fakeMessages
	reactions *fakeReactions
	records   *fakeRecords
	resolver  *Resolver
	mod       *Moderation
	developer uuid.UUID
}

func newWorld() *world {
	users := newFakeUsers()
	messages := newFakeMessages()
	reactions := newFakeReactions()
	records := newFakeRecords()
	developer := users.add("GianniDev")
	resolver := NewResolver(developer, records)
	mod := NewModeration(users, messages, records, resolver, nil)
	return &world{
		users:     users,
		messages:  messages,
		reactions: reactions,
		records:   records,
		resolver:  resolver,
		mod:       mod,
		developer: developer,
	}
}

func (w *world) deps() Deps {
	return Deps{
		Messages:           w.messages,
		Reactions:          w.reactions,
		Users:              w.users,
		Moderation:         w.mod,
		Resolver:           w.resolver,
		MaxWatchedMessages: 10,
		MaxMessageLength:   500,
	}
}

func (w *world) addModerator(username string) uuid.UUID {
	id := w.users.add(username)
	w.records.moderators[id] = &models.ModeratorEntry{
		UserID:   id,
		Username: username,
		AddedBy:  w.developer,
		AddedAt:  time.Now(),
	}
	return id
}
