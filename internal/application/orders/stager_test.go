package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/application/orders"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

func TestStager_SubmitReplacesEarlierOrders(t *testing.T) {
	// Arrange
	s := orders.NewStager("g1", 2400, 0, 1)
	first := &orders.Orders{PlayerNum: 1, Year: 2400, Research: &orders.ResearchOrder{ResearchAmount: 10}}
	second := &orders.Orders{PlayerNum: 1, Year: 2400, Research: &orders.ResearchOrder{ResearchAmount: 20}}

	// Act
	require.NoError(t, s.Submit(context.Background(), first))
	require.NoError(t, s.Submit(context.Background(), second))
	batch := s.Drain()

	// Assert
	require.Len(t, batch, 1)
	assert.Same(t, second, batch[1])
	assert.Empty(t, s.Drain())
}

func TestStager_RejectsWhileLocked(t *testing.T) {
	s := orders.NewStager("g1", 2400, 0, 1)
	s.Lock()

	err := s.Submit(context.Background(), &orders.Orders{PlayerNum: 1, Year: 2400})

	var locked *shared.GameLockedError
	assert.True(t, errors.As(err, &locked))
	assert.True(t, s.Locked())

	s.Unlock(2401)
	assert.NoError(t, s.Submit(context.Background(), &orders.Orders{PlayerNum: 1, Year: 2401}))
	assert.Equal(t, 2401, s.Year())
}

func TestStager_RejectsOrdersForAnotherYear(t *testing.T) {
	s := orders.NewStager("g1", 2400, 0, 1)

	err := s.Submit(context.Background(), &orders.Orders{PlayerNum: 1, Year: 2399})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2399")
	assert.Empty(t, s.Submitted())
}

func TestStager_RejectsMalformedOrders(t *testing.T) {
	s := orders.NewStager("g1", 2400, 0, 1)

	err := s.Submit(context.Background(), &orders.Orders{
		PlayerNum: 1,
		Year:      2400,
		Research:  &orders.ResearchOrder{ResearchAmount: 150},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ResearchAmount")
}

func TestStager_ThrottlesEachPlayer(t *testing.T) {
	// one submission per hour after the first
	s := orders.NewStager("g1", 2400, 1.0/3600, 1)
	require.NoError(t, s.Submit(context.Background(), &orders.Orders{PlayerNum: 1, Year: 2400}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := s.Submit(ctx, &orders.Orders{PlayerNum: 1, Year: 2400})

	assert.Error(t, err)
	// another player has their own budget
	assert.NoError(t, s.Submit(context.Background(), &orders.Orders{PlayerNum: 2, Year: 2400}))
}

func TestStager_ConcurrentSubmissionsAreSortedOnDrain(t *testing.T) {
	s := orders.NewStager("g1", 2400, 0, 1)

	var wg sync.WaitGroup
	for num := 8; num >= 1; num-- {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			_ = s.Submit(context.Background(), &orders.Orders{PlayerNum: num, Year: 2400})
		}(num)
	}
	wg.Wait()

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, s.Submitted())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, orders.PlayerNums(s.Drain()))
}
