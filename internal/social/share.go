package social

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/DanielaGutierrez38/Fitness-App/internal/observability"
	"github.com/DanielaGutierrez38/Fitness-App/internal/shared/apperr"
	"github.com/DanielaGutierrez38/Fitness-App/internal/workout"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	StatSteps    = "steps"
	StatDistance = "distance"
	StatCalories = "calories"

	postTimeLayout = "2006-01-02 15:04:05"
)

// FeedLocation is the timezone post timestamps are rendered in.
var FeedLocation = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ShareContent renders the post text for a stat. Unknown stat types fall back
// to a generic line instead of failing.
func ShareContent(statType, value string) string {
	switch statType {
	case StatSteps:
		return fmt.Sprintf("Look at this, I walked %s steps today!", value)
	case StatDistance:
		return fmt.Sprintf("I crushed it — %s miles logged today!", value)
	case StatCalories:
		return fmt.Sprintf("Burned %s calories! Progress feels good.", value)
	default:
		return fmt.Sprintf("Today's achievement: %s %s!", value, statType)
	}
}

// BuildSharePost creates a post for a stat with a fresh id and the current time.
func BuildSharePost(userID, statType string, value any) (Post, error) {
	return buildSharePost(userID, statType, value, time.Now(), uuid.NewString())
}

func buildSharePost(userID, statType string, value any, now time.Time, id string) (Post, error) {
	if strings.TrimSpace(userID) == "" {
		return Post{}, fmt.Errorf("%w: user_id required", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(statType) == "" {
		return Post{}, fmt.Errorf("%w: stat_type required", apperr.ErrInvalidArgument)
	}
	text, err := formatValue(value)
	if err != nil {
		return Post{}, err
	}
	return Post{
		ID:        id,
		AuthorID:  userID,
		Timestamp: now.In(FeedLocation).Format(postTimeLayout),
		Content:   ShareContent(statType, text),
	}, nil
}

// formatValue renders a stat value; whole floats keep one decimal ("5.0").
func formatValue(value any) (string, error) {
	missing := fmt.Errorf("%w: value required", apperr.ErrInvalidArgument)
	for {
		if value == nil {
			return "", missing
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Pointer {
			break
		}
		if rv.IsNil() {
			return "", missing
		}
		value = rv.Elem().Interface()
	}

	switch v := value.(type) {
	case json.Number:
		return v.String(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return "", missing
		}
		return v, nil
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: unsupported value type %T", apperr.ErrInvalidArgument, value)
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: value must be finite", apperr.ErrInvalidArgument)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return strconv.FormatFloat(f, 'f', 1, 64), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// PostObserver is told about every post after it was stored.
type PostObserver interface {
	PostShared(ctx context.Context, post Post) error
}

// Sharer turns a stat into a stored post. It does not retry.
type Sharer struct {
	sink      PostSink
	observers []PostObserver
	now       func() time.Time
	newID     func() string
	log       logrus.FieldLogger
}

func NewSharer(sink PostSink, observers ...PostObserver) *Sharer {
	return &Sharer{
		sink:      sink,
		observers: observers,
		now:       time.Now,
		newID:     uuid.NewString,
		log:       logrus.WithField("component", "share"),
	}
}

// Share builds and stores the post. Invalid input is rejected before any side
// effect. Observer failures are logged and do not fail the share.
func (s *Sharer) Share(ctx context.Context, userID, statType string, value any) (ShareResult, error) {
	post, err := buildSharePost(userID, statType, value, s.now(), s.newID())
	if err != nil {
		observability.RecordShare(statType, "invalid")
		return ShareResult{Status: ShareStatusError, Message: err.Error()}, err
	}

	if err := s.sink.InsertPost(ctx, post); err != nil {
		observability.RecordShare(statType, ShareStatusError)
		s.log.WithFields(logrus.Fields{
			"user_id": userID,
			"stat":    statType,
		}).WithError(err).Error("could not store shared post")
		return ShareResult{
			Status:      ShareStatusError,
			Message:     fmt.Sprintf("Could not share your %s: the post was not saved, please try again later", statType),
			PostContent: post.Content,
		}, fmt.Errorf("store post for %s: %w", userID, err)
	}

	for _, o := range s.observers {
		if err := o.PostShared(ctx, post); err != nil {
			s.log.WithField("post_id", post.ID).WithError(err).Warn("post observer failed")
		}
	}

	observability.RecordShare(statType, ShareStatusSuccess)
	return ShareResult{
		Status:      ShareStatusSuccess,
		Message:     "Post shared successfully!",
		PostContent: post.Content,
	}, nil
}

// ShareSummary shares one total of a computed summary.
func (s *Sharer) ShareSummary(ctx context.Context, userID string, summary workout.Summary, statType string) (ShareResult, error) {
	var value any
	switch statType {
	case StatSteps:
		value = summary.TotalSteps
	case StatDistance:
		value = summary.TotalDistance
	case StatCalories:
		value = summary.TotalCalories
	default:
		err := fmt.Errorf("%w: summary has no %q total", apperr.ErrInvalidArgument, statType)
		return ShareResult{Status: ShareStatusError, Message: err.Error()}, err
	}
	return s.Share(ctx, userID, statType, value)
}
