package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/services/scoring"
	"github.com/mcoot/wwfstate/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	scoring *scoring.Service
	board   *model.Board
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.scoring = scoring.New()
	s.board = model.NewBoard()
}

func (s *ServiceSuite) commit(move *model.Move) {
	_, err := s.scoring.Move(s.board, move)
	s.Require().NoError(err)
}

// FromSlots tests

func (s *ServiceSuite) TestFromSlotsEmptyIsFreshBoard() {
	board, err := s.service.FromSlots(nil)
	s.Require().NoError(err)
	s.Equal(model.NewBoard(), board)
}

func (s *ServiceSuite) TestFromSlotsCopies() {
	s.commit(model.NewPlay(testutil.Word("AXE"), 0, 0, model.Horizontal))

	board, err := s.service.FromSlots(s.board.Slots)
	s.Require().NoError(err)
	s.Equal(s.board, board)

	board.Slot(0, 0).Tile = nil
	s.True(s.board.Slot(0, 0).Occupied())
}

func (s *ServiceSuite) TestFromSlotsWrongSize() {
	_, err := s.service.FromSlots(make([]model.Slot, 10))
	s.ErrorIs(err, model.ErrInvalidBoard)
}

// ValidatePlay tests

func (s *ServiceSuite) TestValidatePlaySucceeds() {
	rack := testutil.Word("AXEBCDF")
	move := model.NewPlay(rack[:3], 7, 7, model.Horizontal)
	s.NoError(s.service.ValidatePlay(move, rack))
}

func (s *ServiceSuite) TestValidatePlayStartOffBoard() {
	rack := testutil.Word("AXE")
	for _, pos := range [][2]int{{-1, 0}, {15, 3}, {3, 15}} {
		move := model.NewPlay(rack, pos[0], pos[1], model.Vertical)
		err := s.service.ValidatePlay(move, rack)
		s.ErrorIs(err, model.ErrInvalidSubmission)
		s.ErrorIs(err, model.ErrInvalidPosition)
	}
}

func (s *ServiceSuite) TestValidatePlayTileNotInRack() {
	move := model.NewPlay([]model.Tile{testutil.Tile(103)}, 0, 0, model.Horizontal)
	err := s.service.ValidatePlay(move, testutil.Word("AXE"))
	s.ErrorIs(err, model.ErrInvalidSubmission)
	s.ErrorIs(err, model.ErrTileNotInRack)
}

func (s *ServiceSuite) TestValidatePlayRejectsRepeatedTile() {
	rack := testutil.Word("AXE")
	move := model.NewPlay([]model.Tile{rack[0], rack[0]}, 0, 0, model.Horizontal)
	s.ErrorIs(s.service.ValidatePlay(move, rack), model.ErrTileNotInRack)
}

func (s *ServiceSuite) TestValidatePlayNoTiles() {
	move := model.NewPlay(nil, 0, 0, model.Horizontal)
	s.ErrorIs(s.service.ValidatePlay(move, testutil.Word("AXE")), model.ErrInvalidSubmission)
}

// EncodePlayText tests

func (s *ServiceSuite) TestEncodeSimplePlay() {
	move := model.NewPlay(testutil.Word("AXE"), 0, 0, model.Horizontal)
	s.commit(move)

	text, err := s.service.EncodePlayText(s.board, move)
	s.Require().NoError(err)
	s.Equal("15,102,2,", text.Text)
	s.Equal(model.Coordinates{X: 0, Y: 0}, text.From)
	s.Equal(model.Coordinates{X: 2, Y: 0}, text.To)
}

func (s *ServiceSuite) TestEncodeBlankIncludesLowerCaseLetter() {
	move := model.NewPlay(testutil.Word("A*XE"), 0, 0, model.Horizontal)
	s.commit(move)

	text, err := s.service.EncodePlayText(s.board, move)
	s.Require().NoError(err)
	s.Equal("15,0,x,2,", text.Text)
}

func (s *ServiceSuite) TestEncodeSkipsExistingTiles() {
	s.commit(model.NewPlay(testutil.Word("GOBBLE"), 7, 7, model.Horizontal))
	move := model.NewPlay(testutil.Word("LAD"), 6, 8, model.Vertical)
	s.commit(move)

	text, err := s.service.EncodePlayText(s.board, move)
	s.Require().NoError(err)
	s.Equal("63,*,15,58,", text.Text)
	s.Equal(model.Coordinates{X: 8, Y: 6}, text.From)
	s.Equal(model.Coordinates{X: 8, Y: 9}, text.To)
}

func (s *ServiceSuite) TestEncodeUncommittedPlay() {
	move := model.NewPlay(testutil.Word("AXE"), 0, 0, model.Horizontal)
	_, err := s.service.EncodePlayText(s.board, move)
	s.ErrorIs(err, model.ErrInvalidSubmission)
}

func (s *ServiceSuite) TestEncodeSwapText() {
	s.Equal("101,103,0,", s.service.EncodeSwapText([]model.Tile{testutil.Tile(101), testutil.Tile(103), testutil.Tile(0)}))
	s.Equal("", s.service.EncodeSwapText(nil))
}

// Render tests

func (s *ServiceSuite) TestRender() {
	s.commit(model.NewPlay(testutil.Word("A*XE"), 0, 0, model.Horizontal))

	lines := strings.Split(s.service.Render(s.board), "\n")
	s.Len(lines, model.BoardSize+2)
	s.Equal(" 0  A x E # . . = . = . . # . . .", lines[1])
	s.Equal(" 7  . . . + . . . . . . . + . . .", lines[8])
}
