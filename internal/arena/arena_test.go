package arena

import (
	"testing"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/stretchr/testify/suite"
)

type ArenaTestSuite struct {
	suite.Suite
}

func TestArenaSuite(t *testing.T) {
	suite.Run(t, new(ArenaTestSuite))
}

func (suite *ArenaTestSuite) TestDefaultChunkSize() {
	a := New(0)
	suite.Equal(DefaultChunkSize, a.values.chunkSize)
	suite.Equal(uint64(0), a.Generation())
	suite.Equal(0, a.Chunks())
}

func (suite *ArenaTestSuite) TestAllocationsDoNotOverlap() {
	a := New(8)

	first := a.Floats(5)
	second := a.Floats(5)

	suite.Len(first, 5)
	suite.Len(second, 5)
	suite.Equal(5, cap(first))

	for i := range first {
		first[i] = 1
	}

	for _, v := range second {
		suite.Equal(0.0, v)
	}

	// 5 + 5 does not fit one chunk of 8
	suite.Equal(2, a.Chunks())
	suite.Equal(10, a.Allocated())
}

func (suite *ArenaTestSuite) TestAppendDoesNotClobberNeighbour() {
	a := New(16)

	first := a.Floats(2)
	second := a.Floats(2)
	second[0] = 7

	_ = append(first, 99)
	suite.Equal(7.0, second[0])
}

func (suite *ArenaTestSuite) TestOversizedRequest() {
	a := New(4)

	values := a.Values(10)
	suite.Len(values, 10)

	small := a.Values(2)
	suite.Len(small, 2)
	suite.Equal(12, a.Allocated())
}

func (suite *ArenaTestSuite) TestResetReusesChunksAndZeroes() {
	a := New(8)

	values := a.Values(4)
	values[0] = types.IndicatorValue{Valid: true, Value: 42}

	chunks := a.Chunks()

	a.Reset()
	suite.Equal(uint64(1), a.Generation())
	suite.Equal(0, a.Allocated())

	reused := a.Values(4)
	suite.Equal(chunks, a.Chunks())
	suite.False(reused[0].Valid)
	suite.Equal(0.0, reused[0].Value)
}

func (suite *ArenaTestSuite) TestZeroLengthRequest() {
	a := New(8)

	suite.Empty(a.Floats(0))
	suite.Empty(a.Values(-1))
	suite.Equal(0, a.Chunks())
}
