package accessgrants_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinical-sharing/internal/adapters/storage/memory"
	"clinical-sharing/internal/domain/access"
	"clinical-sharing/internal/domain/accessgrants"
	"clinical-sharing/internal/domain/patients"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ConcurrentCreate_NeverTwoActive(t *testing.T) {
	ctx := context.Background()

	pats := patients.NewService(memory.NewPatientRepo())
	p, err := pats.Create(ctx, "user-a", patients.CreateInput{FirstName: "Ana"})
	require.NoError(t, err)

	svc := accessgrants.NewService(memory.NewAccessGrantsRepo(), pats)

	levels := []access.Level{access.LevelRead, access.LevelWrite, access.LevelAdmin}
	const n = 48
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrReplace(ctx, accessgrants.CreateInput{
				PatientID:     p.ID,
				GrantorUserID: "user-a",
				GranteeUserID: "user-b",
				Level:         levels[i%len(levels)],
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := svc.ListForPatient(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	d, err := svc.Evaluator().Check(ctx, "user-b", p.ID, access.ActionViewNote, time.Now())
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, items[0].Level, d.Level)
}
