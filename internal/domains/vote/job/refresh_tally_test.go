package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-backend/internal/domains/vote/model"
	"awards-backend/internal/shared"
	"awards-backend/internal/shared/utils"
)

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) RefreshTally(context.Context) (*model.Tally, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.Tally{TotalBallots: 4}, nil
}

func TestRefreshTallyHandler(t *testing.T) {
	task, err := utils.NewJSONTask(shared.TypeRefreshTally, shared.RefreshTallyPayload{})
	require.NoError(t, err)

	ok := &stubRefresher{}
	require.NoError(t, NewRefreshTallyHandler(ok).ProcessTask(context.Background(), task))
	assert.Equal(t, 1, ok.calls)

	failing := &stubRefresher{err: errors.New("db down")}
	assert.Error(t, NewRefreshTallyHandler(failing).ProcessTask(context.Background(), task))

	bad := asynq.NewTask(shared.TypeRefreshTally, []byte("not json"))
	assert.ErrorIs(t, NewRefreshTallyHandler(ok).ProcessTask(context.Background(), bad), asynq.SkipRetry)
}
