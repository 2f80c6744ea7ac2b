package oracle

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	answer    *big.Int
	updatedAt time.Time
	decimals  uint8
	err       error
}

func (s stubFeed) LatestQuote() (*big.Int, time.Time, uint8, error) {
	if s.err != nil {
		return nil, time.Time{}, 0, s.err
	}
	return s.answer, s.updatedAt, s.decimals, nil
}

func TestFetchValidatedPrice(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	price, err := FetchValidatedPrice(stubFeed{answer: big.NewInt(100_000_000), updatedAt: now, decimals: 8}, time.Hour, now)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1_000_000), price)
}

func TestFetchValidatedPriceNormalisesDecimals(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cases := []struct {
		name     string
		answer   *big.Int
		decimals uint8
		want     *big.Int
	}{
		{"zero decimals", big.NewInt(3), 0, big.NewInt(3_000_000)},
		{"six decimals", big.NewInt(1_234_567), 6, big.NewInt(1_234_567)},
		{"eight decimals", big.NewInt(123_456_789), 8, big.NewInt(1_234_567)},
		{"eighteen decimals", new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), 18, big.NewInt(1_000_000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := FetchValidatedPrice(stubFeed{answer: tc.answer, updatedAt: now, decimals: tc.decimals}, time.Hour, now)
			require.NoError(t, err)
			require.Equal(t, tc.want, price)
		})
	}
}

func TestFetchValidatedPriceRejectsInvalidAnswers(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	_, err := FetchValidatedPrice(stubFeed{answer: big.NewInt(0), updatedAt: now, decimals: 8}, time.Hour, now)
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = FetchValidatedPrice(stubFeed{answer: big.NewInt(-5), updatedAt: now, decimals: 8}, time.Hour, now)
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = FetchValidatedPrice(stubFeed{answer: nil, updatedAt: now, decimals: 8}, time.Hour, now)
	require.ErrorIs(t, err, ErrInvalidPrice)

	upstream := errors.New("rpc timeout")
	_, err = FetchValidatedPrice(stubFeed{err: upstream}, time.Hour, now)
	require.ErrorIs(t, err, upstream)

	_, err = FetchValidatedPrice(nil, time.Hour, now)
	require.Error(t, err)
}

func TestFetchValidatedPriceStaleness(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := func(age time.Duration) stubFeed {
		return stubFeed{answer: big.NewInt(100_000_000), updatedAt: now.Add(-age), decimals: 8}
	}

	// A quote exactly at the threshold is already stale.
	_, err := FetchValidatedPrice(feed(time.Hour), time.Hour, now)
	require.ErrorIs(t, err, ErrStalePrice)

	_, err = FetchValidatedPrice(feed(2*time.Hour), time.Hour, now)
	require.ErrorIs(t, err, ErrStalePrice)

	_, err = FetchValidatedPrice(feed(time.Hour-time.Second), time.Hour, now)
	require.NoError(t, err)

	// Zero staleness disables the age check entirely.
	_, err = FetchValidatedPrice(feed(1000*time.Hour), 0, now)
	require.NoError(t, err)
}
