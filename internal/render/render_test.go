package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/play"
)

func TestDiceFace(t *testing.T) {
	want := []string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}
	for i, w := range want {
		if got := DiceFace(i + 1); got != w {
			t.Fatalf("DiceFace(%d) = %q, want %q", i+1, got, w)
		}
	}
	if got := DiceFace(0); got != "⚀" {
		t.Fatalf("DiceFace(0) = %q, want ⚀", got)
	}
	if got := DiceFace(9); got != "⚀" {
		t.Fatalf("DiceFace(9) = %q, want ⚀", got)
	}
	if got := DiceFaces([]int{3, 5}); got != "⚂ ⚄" {
		t.Fatalf("DiceFaces = %q", got)
	}
}

func TestShortAddressAndPlayerLabel(t *testing.T) {
	addr := "0x742d35cc6634c0532925a3b844bc454e4438f44e"
	if got := ShortAddress(addr); got != "0x742d...f44e" {
		t.Fatalf("ShortAddress = %q", got)
	}
	if got := ShortAddress("0x12"); got != "0x12" {
		t.Fatalf("ShortAddress short = %q", got)
	}
	if got := PlayerLabel(nil); got != "Anonymous" {
		t.Fatalf("PlayerLabel(nil) = %q", got)
	}
	empty := ""
	if got := PlayerLabel(&empty); got != "Anonymous" {
		t.Fatalf("PlayerLabel(empty) = %q", got)
	}
	if got := PlayerLabel(&addr); got != "0x742d...f44e" {
		t.Fatalf("PlayerLabel = %q", got)
	}
}

func TestRarityLabel(t *testing.T) {
	if got := RarityLabel(backend.RarityEpic); got != "Epic" {
		t.Fatalf("RarityLabel(Epic) = %q", got)
	}
	if got := RarityLabel("Mythic"); got != "Common" {
		t.Fatalf("RarityLabel(unknown) = %q", got)
	}
}

func TestWriteStateResolvedAndFailed(t *testing.T) {
	var buf bytes.Buffer
	WriteState(&buf, play.State{
		Phase: play.PhaseResolved,
		Mode:  backend.ModeEncrypted,
		Result: &backend.GameResult{
			DiceResults:  []int{6, 6},
			TotalScore:   12,
			NFTGenerated: true,
			NFTMetadata: &backend.NFTMetadata{
				Name:       "Lucky Roll",
				Attributes: backend.NFTAttributes{Rarity: backend.RarityLegendary, TotalScore: 12},
			},
		},
	})
	out := buf.String()
	for _, want := range []string{"⚅ ⚅", "Score: 12", "encrypted", "NFT Generated!", "Rarity: Legendary"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}

	buf.Reset()
	WriteState(&buf, play.State{Phase: play.PhaseFailed, Failure: &play.Failure{Kind: play.KindBackendRejected, Message: "rate limited"}})
	if got := buf.String(); got != "Error: rate limited\n" {
		t.Fatalf("failed output = %q", got)
	}
}

func TestWriteHistory(t *testing.T) {
	addr := "0x742d35cc6634c0532925a3b844bc454e4438f44e"
	ts := backend.Timestamp{Time: time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)}
	var buf bytes.Buffer
	err := WriteHistory(&buf, []backend.HistoryEntry{
		{PlayerAddress: &addr, DiceResults: []int{1, 2}, TotalScore: 3, Timestamp: ts},
		{DiceResults: []int{6, 6}, TotalScore: 12, NFTGenerated: true},
	}, time.UTC)
	if err != nil {
		t.Fatalf("WriteHistory() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "0x742d...f44e") || !strings.Contains(lines[1], "13:04:05") {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Anonymous") || !strings.Contains(lines[2], "generated") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "-") {
		t.Fatalf("row 2 = %q", lines[2])
	}

	buf.Reset()
	if err := WriteHistory(&buf, nil, time.UTC); err != nil || buf.String() != "No games yet.\n" {
		t.Fatalf("empty history = %q, %v", buf.String(), err)
	}
}

func TestWriteStatsNil(t *testing.T) {
	var buf bytes.Buffer
	WriteStats(&buf, nil)
	if !strings.Contains(buf.String(), "Total games: 0") {
		t.Fatalf("stats output = %q", buf.String())
	}
}
