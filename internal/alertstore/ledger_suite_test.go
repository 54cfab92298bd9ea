package alertstore_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pkordes/stay-planner/internal/service"
)

// LedgerSuite is the behaviour every service.AlertLedger must show. Concrete
// suites set newLedger.
type LedgerSuite struct {
	suite.Suite
	newLedger func() service.AlertLedger
	ledger    service.AlertLedger
	ctx       context.Context
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.ledger = s.newLedger()
}

func (s *LedgerSuite) TestClaimOnce() {
	ok, err := s.ledger.Claim(s.ctx, "alert:u1:7:2025-06-30", time.Hour)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.ledger.Claim(s.ctx, "alert:u1:7:2025-06-30", time.Hour)
	s.Require().NoError(err)
	s.False(ok, "second claim of the same key must lose")
}

func (s *LedgerSuite) TestKeysAreIndependent() {
	for _, key := range []string{"alert:u1:7:2025-06-30", "alert:u1:3:2025-06-30", "alert:u2:7:2025-06-30", "alert:u1:7:2025-07-01"} {
		ok, err := s.ledger.Claim(s.ctx, key, time.Hour)
		s.Require().NoError(err)
		s.True(ok, key)
	}
}

func (s *LedgerSuite) TestReleaseAllowsReclaim() {
	key := "alert:u1:0:2025-06-30"
	_, err := s.ledger.Claim(s.ctx, key, time.Hour)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.Release(s.ctx, key))

	ok, err := s.ledger.Claim(s.ctx, key, time.Hour)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *LedgerSuite) TestReleaseUnknownKey() {
	s.NoError(s.ledger.Release(s.ctx, "alert:nobody:0:2025-06-30"))
}

func (s *LedgerSuite) TestConcurrentClaimsHaveOneWinner() {
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.ledger.Claim(s.ctx, "alert:race:3:2025-06-30", time.Hour)
			s.NoError(err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
}
