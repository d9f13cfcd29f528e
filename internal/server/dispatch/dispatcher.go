// Package dispatch interprets normalized inbound messages against the vault
// services and produces the response the transport binding should render.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/chatvault/internal/common"
	"github.com/dmitrijs2005/chatvault/internal/logging"
	"github.com/dmitrijs2005/chatvault/internal/server/codec"
	"github.com/dmitrijs2005/chatvault/internal/server/models"
	"github.com/dmitrijs2005/chatvault/internal/server/ratelimit"
	"github.com/dmitrijs2005/chatvault/internal/server/services"
	"github.com/dmitrijs2005/chatvault/internal/server/sessions"
)

const (
	msgWelcome      = "✅ Welcome! Turn save mode on and anything you send will be kept in your folder."
	msgShareContact = "📱 Please share your phone number to finish registration."
	msgRegistered   = "✅ Registration complete!"
	msgNotFound     = "❌ No item with that id"
	msgEmptyFolder  = "📂 Your folder is empty"
	msgCleared      = "🗑 Folder cleared!"
	msgSearchSoon   = "🔍 Search is not available yet"
	msgInternal     = "⚠️ Something went wrong, please try again"
	msgInfo         = "ℹ️ What this bot can do:\n\n" +
		"✅ Save mode ON/OFF\n" +
		"✅ Keeps text, photos, video, audio, documents and voice notes\n" +
		"✅ Replays any item by its id\n" +
		"✅ Clear folder\n" +
		"✅ Paged listing"
)

// Dispatcher is the command interpretation core. It owns no transport
// concerns: the caller feeds it normalized messages and renders whatever
// comes back.
type Dispatcher struct {
	users    *services.UserService
	folders  *services.FolderService
	limiter  *ratelimit.Limiter
	sessions *sessions.Store
	logger   logging.Logger
}

// New constructs a Dispatcher over the given services and per-user state.
func New(us *services.UserService, fs *services.FolderService, l *ratelimit.Limiter,
	sess *sessions.Store, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		users:    us,
		folders:  fs,
		limiter:  l,
		sessions: sess,
		logger:   logger.With("module", "dispatch"),
	}
}

// Handle processes one normalized message and returns the response to
// render. A non-nil error reports a store failure; the returned response is
// still renderable (a generic error reply) so the user is not left hanging.
func (d *Dispatcher) Handle(ctx context.Context, msg *models.IncomingMessage) (*Response, error) {
	if msg.SenderID == "" {
		return silent(), nil
	}

	// spam gate: rejected messages are dropped without feedback
	if !d.limiter.Allow(msg.SenderID) {
		return silent(), nil
	}

	user, err := d.users.EnsureUser(ctx, msg.SenderID)
	if err != nil {
		return textReply(msgInternal), err
	}

	// a contact payload completes registration regardless of anything else
	if msg.Contact != nil {
		if err := d.users.CompleteRegistration(ctx, user.ID, msg.Contact.Phone, msg.Contact.Pin); err != nil {
			if errors.Is(err, common.ErrRegistrationRequired) {
				return textReply(msgShareContact), nil
			}
			return textReply(msgInternal), err
		}
		return &Response{
			Kind: ResponseMenu,
			Text: msgRegistered,
			Menu: userMenu(user, d.sessions.SaveMode(user.ID)),
		}, nil
	}

	// everything below is gated on a completed contact exchange
	if !d.users.Registered(user) {
		return textReply(msgShareContact), nil
	}

	if msg.CallbackData != "" {
		if page, ok := parsePageCallback(msg.CallbackData); ok {
			return d.listing(ctx, user, page)
		}
		return silent(), nil
	}

	if msg.Text != "" {
		if resp, handled, err := d.handleText(ctx, user, strings.TrimSpace(msg.Text)); handled {
			return resp, err
		}
	}

	if d.sessions.SaveMode(user.ID) {
		return d.saveMessage(ctx, user, msg)
	}

	// no mode, no recognized command: pass through silently
	return silent(), nil
}

// handleText covers the menu labels and the digit-only item lookup. The
// handled flag is false when the text is neither, leaving the message for
// the save-mode branch.
func (d *Dispatcher) handleText(ctx context.Context, user *models.User, text string) (*Response, bool, error) {
	switch {
	case text == "/start":
		resp := &Response{
			Kind: ResponseMenu,
			Text: msgWelcome,
			Menu: userMenu(user, d.sessions.SaveMode(user.ID)),
		}
		return resp, true, nil

	case text == LabelSaved:
		resp, err := d.listing(ctx, user, 0)
		return resp, true, err

	case isSaveModeLabel(text):
		on := d.sessions.ToggleSaveMode(user.ID)
		state := "OFF"
		if on {
			state = "ON"
		}
		resp := &Response{
			Kind: ResponseMenu,
			Text: fmt.Sprintf("✅ Save mode %s", state),
			Menu: userMenu(user, on),
		}
		return resp, true, nil

	case text == LabelClear:
		n, err := d.folders.Clear(ctx, user.FolderID)
		if err != nil {
			return textReply(msgInternal), true, err
		}
		d.logger.Info(ctx, "folder cleared", "folder_id", user.FolderID, "deleted", n)
		return textReply(msgCleared), true, nil

	case text == LabelInfo:
		return textReply(msgInfo), true, nil

	case text == LabelSearch:
		return textReply(msgSearchSoon), true, nil
	}

	if isDigits(text) {
		itemID, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// longer than int64: no such item either way
			return textReply(msgNotFound), true, nil
		}
		resp, err := d.sendItem(ctx, user, itemID)
		return resp, true, err
	}

	return nil, false, nil
}

// sendItem replays one stored item from the user's folder.
func (d *Dispatcher) sendItem(ctx context.Context, user *models.User, itemID int64) (*Response, error) {
	item, err := d.folders.Item(ctx, user.FolderID, itemID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return textReply(msgNotFound), nil
		}
		return textReply(msgInternal), err
	}

	if item.Kind == models.KindText {
		return textReply(item.Text), nil
	}
	return mediaReply(item), nil
}

// listing renders one page of the user's folder.
func (d *Dispatcher) listing(ctx context.Context, user *models.User, index int) (*Response, error) {
	page, err := d.folders.Page(ctx, user.FolderID, index)
	if err != nil {
		return textReply(msgInternal), err
	}

	if page.Total == 0 {
		return textReply(msgEmptyFolder), nil
	}

	return &Response{
		Kind: ResponseListing,
		Listing: &Listing{
			Page:    page.Index,
			Entries: page.Entries,
			HasPrev: page.HasPrev,
			HasNext: page.HasNext,
		},
	}, nil
}

// saveMessage classifies and persists one message while save mode is on.
// Unsupported content is ignored without feedback.
func (d *Dispatcher) saveMessage(ctx context.Context, user *models.User, msg *models.IncomingMessage) (*Response, error) {
	item, err := codec.Classify(msg)
	if err != nil {
		if errors.Is(err, common.ErrUnsupportedContent) {
			return silent(), nil
		}
		return textReply(msgInternal), err
	}

	id, err := d.folders.Save(ctx, user.FolderID, item)
	if err != nil {
		return textReply(msgInternal), err
	}

	return textReply(fmt.Sprintf("✅ Saved as #%d", id)), nil
}

func parsePageCallback(data string) (int, bool) {
	rest, ok := strings.CutPrefix(data, "page_")
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(rest)
	if err != nil || page < 0 {
		return 0, false
	}
	return page, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
