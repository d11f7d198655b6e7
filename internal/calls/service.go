package calls

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/museflow/call-links/internal/contracts"
	"github.com/museflow/call-links/pkg/bus"
	"github.com/museflow/call-links/pkg/observability"
)

var (
	ErrUnauthorized = errors.New("invalid manager password")
	ErrNoRoomURL    = errors.New("provider returned neither room url nor room name")
)

type RoomCreator interface {
	CreateRoom(ctx context.Context, req RoomRequest) (Room, error)
}

// Settings are the operator-provided values the service needs per call.
type Settings struct {
	// ManagerPass, when non-empty, must equal the request's managerPass.
	ManagerPass string
	// Domain is used only to build a room URL when the provider omits one.
	Domain string
}

type Service struct {
	rooms     RoomCreator
	publisher bus.Publisher
	settings  Settings
	logger    zerolog.Logger
	metrics   *observability.Metrics
	now       func() time.Time
	newID     func() (string, error)
}

// NewService builds the call-link service. publisher and metrics may be nil.
func NewService(rooms RoomCreator, publisher bus.Publisher, settings Settings, logger zerolog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		rooms:     rooms,
		publisher: publisher,
		settings:  settings,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
		newID:     newUUID,
	}
}

func (s *Service) CreateCall(ctx context.Context, req CallRequest, correlationID string) (CallLinks, error) {
	if s.settings.ManagerPass != "" && s.settings.ManagerPass != string(req.ManagerPass) {
		return CallLinks{}, ErrUnauthorized
	}

	expiresAt := s.now().Unix() + ExpiresInSeconds(req.DurationMinutes.Resolve())

	room, err := s.rooms.CreateRoom(ctx, RoomRequest{Privacy: "private", Properties: RoomProperties{Exp: expiresAt}})
	if err != nil {
		var providerErr *ProviderError
		if errors.As(err, &providerErr) {
			s.metrics.ObserveProviderCall(observability.OutcomeRejected)
		} else {
			s.metrics.ObserveProviderCall(observability.OutcomeFailed)
		}
		return CallLinks{}, err
	}

	roomURL, err := s.roomURL(room)
	if err != nil {
		s.metrics.ObserveProviderCall(observability.OutcomeFailed)
		return CallLinks{}, err
	}
	s.metrics.ObserveProviderCall(observability.OutcomeCreated)

	if err := s.publishCallCreated(correlationID, room, roomURL, expiresAt); err != nil {
		s.logger.Warn().Err(err).Str("correlation_id", correlationID).Msg("publish call created event")
	}

	return CallLinks{
		OK:        true,
		ExpiresAt: expiresAt,
		Links: Links{
			Model:          JoinURL(roomURL, req.ModelName.Or(DefaultModelName)),
			Client:         JoinURL(roomURL, req.ClientName.Or(DefaultClientName)),
			ManagerStealth: JoinURL(roomURL, req.ManagerName.Or(DefaultManagerName)),
		},
	}, nil
}

// ExpiresInSeconds converts requested minutes into a room lifetime,
// clamping to at least one minute. NaN counts as non-positive.
func ExpiresInSeconds(minutes float64) int64 {
	if math.IsNaN(minutes) || minutes < 1 {
		minutes = 1
	}
	if minutes > MaxDurationMinutes {
		minutes = MaxDurationMinutes
	}
	return int64(minutes * 60)
}

// JoinURL appends the display name to the room URL as the userName query value.
func JoinURL(roomURL, userName string) string {
	return roomURL + "?userName=" + encodeURIComponent(userName)
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

func (s *Service) roomURL(room Room) (string, error) {
	if room.URL != "" {
		return room.URL, nil
	}
	if room.Name == "" {
		return "", ErrNoRoomURL
	}
	return fmt.Sprintf("https://%s/room_%s", s.settings.Domain, room.Name), nil
}

func (s *Service) publishCallCreated(correlationID string, room Room, roomURL string, expiresAt int64) error {
	if s.publisher == nil {
		return nil
	}
	eventID, err := s.newID()
	if err != nil {
		return err
	}
	payload := contracts.CallCreatedV1{RoomURL: roomURL, RoomName: room.Name, ExpiresAt: expiresAt}
	raw, err := contracts.MarshalV1(eventID, contracts.EventCallCreated, s.now().UTC(), correlationID, payload)
	if err != nil {
		return err
	}
	return s.publisher.Publish(contracts.SubjectCallCreated, raw)
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
