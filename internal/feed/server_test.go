package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/jdmarch/breakaway/internal/export"
	. "github.com/smartystreets/goconvey/convey"
)

func cannedGame() export.PBPGame {
	raw := []string{
		`{"time":0,"kind":"period_start","desc":"Period 1 begins","home_score":0,"away_score":0}`,
		`{"time":41.25,"kind":"shot","desc":"Shot by Canada","home_score":0,"away_score":0,"xg":0.0912}`,
		`{"time":41.25,"kind":"goal","desc":"Goal by Canada","home_score":1,"away_score":0,"assists":1}`,
		`{"time":1200,"kind":"period_end","desc":"Period 1 ends","home_score":1,"away_score":0}`,
	}
	g := export.PBPGame{GameID: 7, Week: 1, HomeTeam: "Canada", AwayTeam: "Sweden"}
	for _, r := range raw {
		g.Events = append(g.Events, json.RawMessage(r))
	}
	return g
}

func TestFeedServer(t *testing.T) {
	Convey("Given a feed server with one stored game", t, func() {
		srv := &Server{speed: 100000, games: []export.PBPGame{cannedGame()}}
		ts := httptest.NewServer(srv.Handler())
		defer ts.Close()
		wsBase := "ws" + strings.TrimPrefix(ts.URL, "http")

		Convey("GET /games lists it with its event count", func() {
			resp, err := http.Get(ts.URL + "/games")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var games []gameSummary
			So(json.NewDecoder(resp.Body).Decode(&games), ShouldBeNil)
			So(games, ShouldHaveLength, 1)
			So(games[0].GameID, ShouldEqual, 7)
			So(games[0].HomeTeam, ShouldEqual, "Canada")
			So(games[0].AwayTeam, ShouldEqual, "Sweden")
			So(games[0].Events, ShouldEqual, 4)
		})

		Convey("A websocket client replays every event in order", func() {
			conn, _, err := websocket.DefaultDialer.Dial(wsBase+"/ws/7", nil)
			So(err, ShouldBeNil)
			defer conn.Close()

			var kinds []string
			prev := -1.0
			for i := 0; i < 4; i++ {
				_, msg, err := conn.ReadMessage()
				So(err, ShouldBeNil)
				var ev struct {
					Time float64 `json:"time"`
					Kind string  `json:"kind"`
				}
				So(json.Unmarshal(msg, &ev), ShouldBeNil)
				So(ev.Time, ShouldBeGreaterThanOrEqualTo, prev)
				prev = ev.Time
				kinds = append(kinds, ev.Kind)
			}
			So(kinds, ShouldResemble, []string{"period_start", "shot", "goal", "period_end"})

			Convey("And the server closes the stream after the last event", func() {
				_, _, err := conn.ReadMessage()
				So(err, ShouldNotBeNil)
			})
		})

		Convey("An unknown game id refuses the upgrade", func() {
			_, resp, err := websocket.DefaultDialer.Dial(wsBase+"/ws/99", nil)
			So(err, ShouldNotBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("A non-numeric game id refuses the upgrade", func() {
			_, resp, err := websocket.DefaultDialer.Dial(wsBase+"/ws/alpha", nil)
			So(err, ShouldNotBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}
