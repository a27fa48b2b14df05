package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xauspro/truth-or-dare/internal/config"
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// newTestServer spins up a server against miniredis and a temp SQLite file.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	cfg.DB.Path = filepath.Join(t.TempDir(), "test.db")

	s, err := NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fakeClient builds a client without a websocket connection. Pumps are
// never started, so sent messages stay readable on the send channel.
func fakeClient(s *Server) *Client {
	c := NewClient(s, nil)
	s.registerClient(c)
	return c
}

func recv(t *testing.T, c *Client) *protocol.Message {
	t.Helper()
	select {
	case data := <-c.send:
		msg, err := protocol.Decode(data)
		require.NoError(t, err)
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func recvType(t *testing.T, c *Client, want protocol.MessageType) *protocol.Message {
	t.Helper()
	msg := recv(t, c)
	require.Equal(t, want, msg.Type, "unexpected message type")
	return msg
}

func recvError(t *testing.T, c *Client) *protocol.ErrorPayload {
	t.Helper()
	msg := recvType(t, c, protocol.MsgError)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	return payload
}

func authedClient(t *testing.T, s *Server, userID int64, name string) *Client {
	t.Helper()
	c := fakeClient(s)
	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgAuth, protocol.AuthPayload{
		UserID: userID,
		Name:   name,
	}))
	recvType(t, c, protocol.MsgAuthed)
	return c
}

func TestHandleAuth(t *testing.T) {
	s := newTestServer(t)
	c := fakeClient(s)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgAuth, protocol.AuthPayload{
		UserID: 100,
		Name:   "小明",
	}))

	msg := recvType(t, c, protocol.MsgAuthed)
	payload, err := protocol.ParsePayload[protocol.AuthedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(100), payload.UserID)
	assert.Equal(t, "小明", payload.Name)
	assert.False(t, payload.IsPremium)
	assert.Equal(t, int64(100), c.UserID)

	// The user must be persisted
	u, err := s.users.GetUser(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "小明", u.Name)
}

func TestHandleAuth_Invalid(t *testing.T) {
	s := newTestServer(t)
	c := fakeClient(s)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgAuth, protocol.AuthPayload{UserID: 0}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, recvError(t, c).Code)
}

func TestHandle_RequiresAuth(t *testing.T) {
	s := newTestServer(t)
	c := fakeClient(s)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	assert.Equal(t, protocol.ErrCodeNotAuthed, recvError(t, c).Code)
}

func TestHandle_UnknownType(t *testing.T) {
	s := newTestServer(t)
	c := fakeClient(s)

	s.handler.Handle(c, &protocol.Message{Type: "bogus"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, recvError(t, c).Code)
}

func TestHandlePing(t *testing.T) {
	s := newTestServer(t)
	c := fakeClient(s)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 12345}))

	msg := recvType(t, c, protocol.MsgPong)
	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), payload.ClientTimestamp)
	assert.NotZero(t, payload.ServerTimestamp)
}

func TestCreateJoinStartFlow(t *testing.T) {
	s := newTestServer(t)
	host := authedClient(t, s, 100, "小明")
	guest := authedClient(t, s, 200, "小红")

	// Host creates a room
	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Categories: []string{"funny"},
		MaxRounds:  5,
	}))
	created, err := protocol.ParsePayload[protocol.RoomCreatedPayload](recvType(t, host, protocol.MsgRoomCreated))
	require.NoError(t, err)
	assert.NotEmpty(t, created.InviteCode)
	assert.Equal(t, []string{"funny"}, created.Categories)
	assert.Equal(t, 5, created.MaxRounds)

	// The snapshot lands in Redis
	snap, err := s.store.LoadGame(context.Background(), created.GameID)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "friend", snap.Kind)

	// Guest joins with the invite code
	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		InviteCode: created.InviteCode,
	}))
	joined, err := protocol.ParsePayload[protocol.RoomJoinedPayload](recvType(t, guest, protocol.MsgRoomJoined))
	require.NoError(t, err)
	require.Len(t, joined.Players, 2)
	assert.Equal(t, int64(100), joined.Players[0].ID)
	assert.True(t, joined.Players[0].IsHost)
	assert.Equal(t, "小明", joined.Players[0].Name)

	// Host is notified about the newcomer
	notified, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](recvType(t, host, protocol.MsgPlayerJoined))
	require.NoError(t, err)
	assert.Equal(t, int64(200), notified.Player.ID)

	// Only the host may start
	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgStartRoom, nil))
	assert.Equal(t, protocol.ErrCodeNotHost, recvError(t, guest).Code)

	// Host starts, both receive game_start
	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgStartRoom, nil))
	for _, c := range []*Client{host, guest} {
		start, err := protocol.ParsePayload[protocol.GameStartPayload](recvType(t, c, protocol.MsgGameStart))
		require.NoError(t, err)
		assert.Contains(t, []int64{100, 200}, start.CurrentPlayer)
		assert.Equal(t, 5, start.MaxRounds)
	}
}

func TestJoinRoom_UnknownCode(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		InviteCode: "NOSUCH",
	}))
	assert.Equal(t, protocol.ErrCodeRoomNotFound, recvError(t, c).Code)
}

func TestCreateRoom_AlreadyInGame(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	recvType(t, c, protocol.MsgRoomCreated)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	assert.Equal(t, protocol.ErrCodeAlreadyInGame, recvError(t, c).Code)
}

func TestFindRandom_QueueAndMatch(t *testing.T) {
	s := newTestServer(t)
	c1 := authedClient(t, s, 100, "小明")
	c2 := authedClient(t, s, 200, "小红")

	// First player queues up
	s.handler.Handle(c1, protocol.MustNewMessage(protocol.MsgFindRandom, nil))
	searching, err := protocol.ParsePayload[protocol.SearchingPayload](recvType(t, c1, protocol.MsgSearching))
	require.NoError(t, err)
	assert.Equal(t, 1, searching.Waiting)

	// Second player matches instantly, both sides get match_found
	s.handler.Handle(c2, protocol.MustNewMessage(protocol.MsgFindRandom, nil))

	m1, err := protocol.ParsePayload[protocol.MatchFoundPayload](recvType(t, c1, protocol.MsgMatchFound))
	require.NoError(t, err)
	m2, err := protocol.ParsePayload[protocol.MatchFoundPayload](recvType(t, c2, protocol.MsgMatchFound))
	require.NoError(t, err)

	assert.Equal(t, m1.GameID, m2.GameID)
	assert.Equal(t, int64(200), m1.Opponent.ID)
	assert.Equal(t, int64(100), m2.Opponent.ID)
	assert.Equal(t, m1.CurrentPlayer, m2.CurrentPlayer)
}

func TestFindRandom_DailyLimit(t *testing.T) {
	s := newTestServer(t)
	s.config.Game.FreeSearchesPerDay = 1

	c1 := authedClient(t, s, 100, "小明")
	c2 := authedClient(t, s, 200, "小红")

	// Use up the single free search via a real match
	s.handler.Handle(c1, protocol.MustNewMessage(protocol.MsgFindRandom, nil))
	recvType(t, c1, protocol.MsgSearching)
	s.handler.Handle(c2, protocol.MustNewMessage(protocol.MsgFindRandom, nil))
	recvType(t, c1, protocol.MsgMatchFound)
	recvType(t, c2, protocol.MsgMatchFound)

	s.handler.Handle(c1, protocol.MustNewMessage(protocol.MsgEndGame, nil))
	recvType(t, c1, protocol.MsgGameOver)
	recvType(t, c2, protocol.MsgGameOver)

	// Next search is rejected
	s.handler.Handle(c1, protocol.MustNewMessage(protocol.MsgFindRandom, nil))
	assert.Equal(t, protocol.ErrCodeSearchLimit, recvError(t, c1).Code)
}

func TestFindRandom_PremiumUnlimited(t *testing.T) {
	s := newTestServer(t)
	s.config.Game.FreeSearchesPerDay = 1

	c := authedClient(t, s, 100, "小明")
	require.NoError(t, s.users.SetPremium(context.Background(), 100, true))

	for range 3 {
		s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgFindRandom, nil))
		recvType(t, c, protocol.MsgSearching)
	}
}

func TestCancelSearch_RefundsQuota(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgFindRandom, nil))
	recvType(t, c, protocol.MsgSearching)

	n, err := s.store.SearchCount(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgCancelSearch, nil))
	recvType(t, c, protocol.MsgSearchCancelled)

	n, err = s.store.SearchCount(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 0, s.engine.WaitingCount())
}

// Full in-room game: draw a task, finish it, hit the round limit.
func TestGameFlow_TaskTurnAndGameOver(t *testing.T) {
	s := newTestServer(t)
	host := authedClient(t, s, 100, "小明")
	guest := authedClient(t, s, 200, "小红")

	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		MaxRounds: 2,
	}))
	created, err := protocol.ParsePayload[protocol.RoomCreatedPayload](recvType(t, host, protocol.MsgRoomCreated))
	require.NoError(t, err)

	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		InviteCode: created.InviteCode,
	}))
	recvType(t, guest, protocol.MsgRoomJoined)
	recvType(t, host, protocol.MsgPlayerJoined)

	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgStartRoom, nil))
	start, err := protocol.ParsePayload[protocol.GameStartPayload](recvType(t, host, protocol.MsgGameStart))
	require.NoError(t, err)
	recvType(t, guest, protocol.MsgGameStart)

	byID := map[int64]*Client{100: host, 200: guest}
	current := byID[start.CurrentPlayer]
	other := byID[opponentOf(start.CurrentPlayer)]

	// Drawing a task out of turn is rejected
	s.handler.Handle(other, protocol.MustNewMessage(protocol.MsgGetTask, protocol.GetTaskPayload{Kind: "truth"}))
	assert.Equal(t, protocol.ErrCodeNotYourTurn, recvError(t, other).Code)

	// The current player draws, everyone sees the task
	s.handler.Handle(current, protocol.MustNewMessage(protocol.MsgGetTask, protocol.GetTaskPayload{Kind: "truth"}))
	for _, c := range []*Client{host, guest} {
		task, err := protocol.ParsePayload[protocol.TaskPayload](recvType(t, c, protocol.MsgTask))
		require.NoError(t, err)
		assert.Equal(t, "truth", task.Kind)
		assert.NotEmpty(t, task.Text)
	}

	// Round 1 done, the turn passes to the other player
	s.handler.Handle(current, protocol.MustNewMessage(protocol.MsgTaskDone, nil))
	turn, err := protocol.ParsePayload[protocol.TurnPayload](recvType(t, current, protocol.MsgTurn))
	require.NoError(t, err)
	recvType(t, other, protocol.MsgTurn)
	assert.NotEqual(t, start.CurrentPlayer, turn.PlayerID)
	assert.Equal(t, 1, turn.Round)

	// Round 2 exhausts the budget and ends the game
	s.handler.Handle(byID[turn.PlayerID], protocol.MustNewMessage(protocol.MsgTaskDone, nil))
	for _, c := range []*Client{host, guest} {
		over, err := protocol.ParsePayload[protocol.GameOverPayload](recvType(t, c, protocol.MsgGameOver))
		require.NoError(t, err)
		assert.Equal(t, 2, over.Rounds)
	}

	// Stats reflect the finished game
	u, err := s.users.GetUser(context.Background(), start.CurrentPlayer)
	require.NoError(t, err)
	assert.Equal(t, 1, u.GamesPlayed)
	assert.Equal(t, 1, u.TasksDone)
	assert.Nil(t, s.engine.GetGameForPlayer(100))
	assert.Nil(t, s.engine.GetGameForPlayer(200))
}

// A task_done arriving after another player already ended the game must
// come back as a not-in-game error, never crash the handler.
func TestTaskDone_GameFinishedConcurrently(t *testing.T) {
	s := newTestServer(t)
	host := authedClient(t, s, 100, "小明")
	guest := authedClient(t, s, 200, "小红")

	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	created, err := protocol.ParsePayload[protocol.RoomCreatedPayload](recvType(t, host, protocol.MsgRoomCreated))
	require.NoError(t, err)

	s.handler.Handle(guest, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		InviteCode: created.InviteCode,
	}))
	recvType(t, guest, protocol.MsgRoomJoined)
	recvType(t, host, protocol.MsgPlayerJoined)

	s.handler.Handle(host, protocol.MustNewMessage(protocol.MsgStartRoom, nil))
	start, err := protocol.ParsePayload[protocol.GameStartPayload](recvType(t, host, protocol.MsgGameStart))
	require.NoError(t, err)
	recvType(t, guest, protocol.MsgGameStart)

	// Another player ends the game before the current player's task_done lands
	s.engine.FinishGame(created.GameID)

	byID := map[int64]*Client{100: host, 200: guest}
	current := byID[start.CurrentPlayer]
	s.handler.Handle(current, protocol.MustNewMessage(protocol.MsgTaskDone, nil))
	assert.Equal(t, protocol.ErrCodeNotInGame, recvError(t, current).Code)
}

func opponentOf(id int64) int64 {
	if id == 100 {
		return 200
	}
	return 100
}

func TestGetStats(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgGetStats, nil))
	stats, err := protocol.ParsePayload[protocol.StatsResultPayload](recvType(t, c, protocol.MsgStatsResult))
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.UserID)
	assert.Equal(t, 0, stats.GamesPlayed)
	assert.Equal(t, []string{"acquaintance", "flirt"}, stats.Categories)
}

func TestSetProfile(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgSetProfile, protocol.SetProfilePayload{
		Gender: "male",
		Age:    25,
	}))
	recvType(t, c, protocol.MsgProfileSaved)

	u, err := s.users.GetUser(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "male", u.Gender)
	assert.Equal(t, 25, u.Age)

	// Invalid profile values are rejected
	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgSetProfile, protocol.SetProfilePayload{
		Gender: "robot",
		Age:    25,
	}))
	assert.Equal(t, protocol.ErrCodeInvalidProfile, recvError(t, c).Code)

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgSetProfile, protocol.SetProfilePayload{
		Gender: "male",
		Age:    5,
	}))
	assert.Equal(t, protocol.ErrCodeInvalidProfile, recvError(t, c).Code)
}

func TestSetCategories_FiltersInvalid(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgSetCategories, protocol.SetCategoriesPayload{
		Categories: []string{"funny", "bogus", "sexy"},
	}))
	saved, err := protocol.ParsePayload[protocol.ProfileSavedPayload](recvType(t, c, protocol.MsgProfileSaved))
	require.NoError(t, err)
	assert.Equal(t, []string{"funny", "sexy"}, saved.Categories)

	u, err := s.users.GetUser(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"funny", "sexy"}, u.Categories)
}

func TestSetSearchPrefs(t *testing.T) {
	s := newTestServer(t)
	c := authedClient(t, s, 100, "小明")

	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgSetSearchPrefs, protocol.SetSearchPrefsPayload{
		Gender: "female",
		AgeMin: 20,
		AgeMax: 30,
	}))
	recvType(t, c, protocol.MsgProfileSaved)

	u, err := s.users.GetUser(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "female", u.SearchGender)
	assert.Equal(t, 20, u.SearchAgeMin)
	assert.Equal(t, 30, u.SearchAgeMax)

	// Inverted age bounds are rejected
	s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgSetSearchPrefs, protocol.SetSearchPrefsPayload{
		AgeMin: 40,
		AgeMax: 20,
	}))
	assert.Equal(t, protocol.ErrCodeInvalidProfile, recvError(t, c).Code)
}
