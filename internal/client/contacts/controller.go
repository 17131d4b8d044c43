// Package contacts keeps the client-side contact list: the baseline last
// confirmed by the server, the working copy the user edits, and the set of
// records with unsaved edits.
//
// Edits are local until saved. Deletes are optimistic: the record leaves
// the working copy at once and is appended back at the end if the server
// refuses. Every network failure lands in a single error slot that the next
// network operation clears.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcontacts/internal/client/auth"
	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
	"github.com/dmitrijs2005/gophcontacts/internal/logging"
)

// createdAtLayout matches the timestamps the web front-end sent.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// API is the part of the contacts API the controller talks to.
type API interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	UpdateContact(ctx context.Context, contact models.Contact) error
	DeleteContact(ctx context.Context, contactID int64) error
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
}

type Session interface {
	Authenticated() bool
	Identity() models.Identity
}

type Notifier interface {
	Show(msg string)
}

// Match is a search hit and its position in the working copy.
type Match struct {
	Index   int
	Contact models.Contact
}

type Controller struct {
	api     API
	session Session
	notify  Notifier
	logger  logging.Logger
	now     func() time.Time

	mu       sync.Mutex
	baseline []models.Contact
	working  []models.Contact
	dirty    map[int64]struct{}
	draft    models.Draft
	lastErr  error
	epoch    uint64
}

func NewController(api API, session Session, notify Notifier, logger logging.Logger) *Controller {
	return &Controller{
		api:     api,
		session: session,
		notify:  notify,
		logger:  logger,
		now:     time.Now,
		dirty:   make(map[int64]struct{}),
		draft:   models.Draft{},
	}
}

// HandleSessionChange is meant to be subscribed to the session. A new
// session starts from an empty list and loads it; an ended one wipes it.
func (c *Controller) HandleSessionChange(ctx context.Context, state auth.State) {
	c.Reset()
	if state != auth.StateAuthenticated {
		return
	}
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn(ctx, "initial contact load failed", "error", err)
	}
}

// Reset forgets everything, the draft included. Requests still in flight
// will not touch the emptied state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.baseline = nil
	c.working = nil
	c.dirty = make(map[int64]struct{})
	c.draft = models.Draft{}
	c.lastErr = nil
}

// begin clears the error slot and returns the epoch the request belongs to.
// Callers hold c.mu.
func (c *Controller) begin() uint64 {
	c.lastErr = nil
	return c.epoch
}

// fail records a failure unless the state was reset meanwhile. Callers hold
// c.mu.
func (c *Controller) fail(ctx context.Context, epoch uint64, msg string, err error) error {
	f := &Failure{Message: msg, Err: err}
	if epoch != c.epoch {
		return f
	}
	c.lastErr = f
	c.logger.Error(ctx, msg, "error", err)
	return f
}

func (c *Controller) checkIndex(i int) error {
	if i < 0 || i >= len(c.working) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(c.working))
	}
	return nil
}

// Refresh replaces the baseline and the working copy with the server's list
// and drops all unsaved edits. On failure nothing changes.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.session.Authenticated() {
		return ErrNotAuthenticated
	}

	c.mu.Lock()
	epoch := c.begin()
	c.mu.Unlock()

	list, err := c.api.ListContacts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		return c.fail(ctx, epoch, MsgLoadFailed, err)
	}
	if epoch != c.epoch {
		return ErrReset
	}

	c.baseline = slices.Clone(list)
	c.working = slices.Clone(list)
	c.dirty = make(map[int64]struct{})
	c.logger.Debug(ctx, "contacts loaded", "count", len(list))
	return nil
}

// Edit sets one field of the working record at index and marks it dirty.
func (c *Controller) Edit(index int, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndex(index); err != nil {
		return err
	}
	rec := c.working[index]
	if err := rec.SetField(field, value); err != nil {
		return fmt.Errorf("%w: %q", err, field)
	}
	c.working[index] = rec
	c.dirty[rec.ContactID] = struct{}{}
	return nil
}

// Save sends the working record at index to the server. On success the
// sent version becomes the baseline and the record is clean again, unless
// it was edited once more while the request was in flight.
func (c *Controller) Save(ctx context.Context, index int) error {
	c.mu.Lock()
	if err := c.checkIndex(index); err != nil {
		c.mu.Unlock()
		return err
	}
	epoch := c.begin()
	sent := c.working[index]
	c.mu.Unlock()

	err := c.api.UpdateContact(ctx, sent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		return c.fail(ctx, epoch, MsgSaveFailed, err)
	}
	if epoch != c.epoch {
		return ErrReset
	}

	if i := indexOf(c.baseline, sent.ContactID); i >= 0 {
		c.baseline[i] = sent
	}
	if i := indexOf(c.working, sent.ContactID); i < 0 || c.working[i] == sent {
		delete(c.dirty, sent.ContactID)
	}
	c.notify.Show(MsgSaved)
	return nil
}

// Discard throws away the unsaved edits of the record at index.
func (c *Controller) Discard(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkIndex(index); err != nil {
		return err
	}
	id := c.working[index].ContactID
	if i := indexOf(c.baseline, id); i >= 0 {
		c.working[index] = c.baseline[i]
	}
	delete(c.dirty, id)
	return nil
}

// Remove takes the record at index out of the working copy and deletes it on
// the server. If the server refuses, the record comes back at the end of the
// list.
func (c *Controller) Remove(ctx context.Context, index int) error {
	c.mu.Lock()
	if err := c.checkIndex(index); err != nil {
		c.mu.Unlock()
		return err
	}
	epoch := c.begin()
	removed := c.working[index]
	c.working = slices.Delete(c.working, index, index+1)
	c.mu.Unlock()

	err := c.api.DeleteContact(ctx, removed.ContactID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if epoch == c.epoch && indexOf(c.working, removed.ContactID) < 0 {
			c.working = append(c.working, removed)
		}
		return c.fail(ctx, epoch, MsgDeleteFailed, err)
	}
	if epoch != c.epoch {
		return ErrReset
	}

	if i := indexOf(c.baseline, removed.ContactID); i >= 0 {
		c.baseline = slices.Delete(c.baseline, i, i+1)
	}
	delete(c.dirty, removed.ContactID)
	c.notify.Show(MsgDeleted)
	return nil
}

// SetDraftField fills one field of the contact being composed.
func (c *Controller) SetDraftField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.draft.Set(field, value); err != nil {
		return fmt.Errorf("%w: %q", err, field)
	}
	return nil
}

func (c *Controller) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// Create posts the draft, stamped with the owner and the creation time. The
// server's version of the record is appended to the list and the draft is
// cleared. On failure the draft is kept.
func (c *Controller) Create(ctx context.Context) error {
	if !c.session.Authenticated() {
		return ErrNotAuthenticated
	}

	c.mu.Lock()
	epoch := c.begin()
	rec := c.draft.Contact()
	c.mu.Unlock()

	rec.OwnerID = c.session.Identity().OwnerID()
	rec.CreatedAt = c.now().UTC().Format(createdAtLayout)

	created, err := c.api.CreateContact(ctx, rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		return c.fail(ctx, epoch, MsgCreateFailed, err)
	}
	if epoch != c.epoch {
		return ErrReset
	}

	c.baseline = append(c.baseline, created)
	c.working = append(c.working, created)
	c.draft = models.Draft{}
	c.notify.Show(MsgSaved)
	return nil
}

// Search returns the working records with any field containing query,
// ignoring case. An empty query matches everything.
func (c *Controller) Search(query string) []Match {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(query)
	var out []Match
	for i, rec := range c.working {
		if matches(rec, q) {
			out = append(out, Match{Index: i, Contact: rec})
		}
	}
	return out
}

func matches(rec models.Contact, q string) bool {
	for _, v := range rec.Values() {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func (c *Controller) Working() []models.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.working)
}

func (c *Controller) Baseline() []models.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.baseline)
}

// DirtyIndices lists the working positions with unsaved edits, ascending.
func (c *Controller) DirtyIndices() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []int
	for i, rec := range c.working {
		if _, ok := c.dirty[rec.ContactID]; ok {
			out = append(out, i)
		}
	}
	return out
}

func (c *Controller) IsDirty(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checkIndex(index) != nil {
		return false
	}
	_, ok := c.dirty[c.working[index].ContactID]
	return ok
}

// LastError returns the most recent network failure, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Len is the size of the working copy.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.working)
}

func indexOf(list []models.Contact, id int64) int {
	return slices.IndexFunc(list, func(c models.Contact) bool { return c.ContactID == id })
}

// IsFailure reports whether err came out of a failed network operation.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
