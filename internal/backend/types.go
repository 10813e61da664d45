package backend

import (
	"encoding/json"
	"fmt"
)

type Mode string

const (
	ModeEncrypted Mode = "fhe"
	ModeStandard  Mode = "standard"
)

// NumDice is fixed for this game.
const NumDice = 2

const DefaultHistoryLimit = 5

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Ciphertext is an opaque engine-produced byte sequence. On the wire it is a
// JSON array of byte values rather than encoding/json's default base64.
type Ciphertext []byte

func (c Ciphertext) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	out := make([]int, len(c))
	for i, b := range c {
		out[i] = int(b)
	}
	return json.Marshal(out)
}

func (c *Ciphertext) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = nil
		return nil
	}
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	out := make(Ciphertext, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("ciphertext byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*c = out
	return nil
}

type EncryptedDice struct {
	Dice1 Ciphertext `json:"dice1"`
	Dice2 Ciphertext `json:"dice2"`
	Mode  Mode       `json:"mode"`
}

type PlayRequest struct {
	PlayerAddress *string        `json:"player_address"`
	NumDice       int            `json:"num_dice"`
	GameMode      Mode           `json:"game_mode"`
	EncryptedData *EncryptedDice `json:"encrypted_data"`
	EnvironmentID string         `json:"environment_id"`
}

// Validate enforces that the encrypted mode travels with a payload and the
// standard mode without one.
func (r PlayRequest) Validate() error {
	if r.NumDice != NumDice {
		return fmt.Errorf("%w: num_dice must be %d", ErrInvalidPlayRequest, NumDice)
	}
	switch r.GameMode {
	case ModeEncrypted:
		if r.EncryptedData == nil || len(r.EncryptedData.Dice1) == 0 || len(r.EncryptedData.Dice2) == 0 {
			return fmt.Errorf("%w: fhe mode requires encrypted dice", ErrInvalidPlayRequest)
		}
	case ModeStandard:
		if r.EncryptedData != nil {
			return fmt.Errorf("%w: standard mode must not carry encrypted data", ErrInvalidPlayRequest)
		}
	default:
		return fmt.Errorf("%w: unknown game mode %q", ErrInvalidPlayRequest, r.GameMode)
	}
	return nil
}

type NFTAttributes struct {
	Rarity          Rarity `json:"rarity"`
	TotalScore      int    `json:"total_score"`
	DiceCombination []int  `json:"dice_combination,omitempty"`
	SpecialCombo    bool   `json:"special_combo,omitempty"`
	GameMode        Mode   `json:"game_mode,omitempty"`
}

type NFTMetadata struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image,omitempty"`
	Attributes  NFTAttributes `json:"attributes"`
	PoweredBy   string        `json:"powered_by,omitempty"`
}

type GameResult struct {
	GameID       string       `json:"game_id,omitempty"`
	DiceResults  []int        `json:"dice_results"`
	TotalScore   int          `json:"total_score"`
	NFTGenerated bool         `json:"nft_generated"`
	NFTMetadata  *NFTMetadata `json:"nft_metadata,omitempty"`
	GameMode     Mode         `json:"game_mode,omitempty"`
	FHEEnabled   bool         `json:"fhe_enabled,omitempty"`
	Network      string       `json:"network,omitempty"`
}

func (g *GameResult) validate(numDice int) error {
	if len(g.DiceResults) != numDice {
		return fmt.Errorf("%w: got %d dice, want %d", ErrMalformedResponse, len(g.DiceResults), numDice)
	}
	for _, v := range g.DiceResults {
		if v < 1 || v > 6 {
			return fmt.Errorf("%w: die value %d out of range", ErrMalformedResponse, v)
		}
	}
	return nil
}

type Stats struct {
	TotalGames int    `json:"total_games"`
	TotalNFTs  int    `json:"total_nfts"`
	TotalUsers int    `json:"total_users"`
	Network    string `json:"network,omitempty"`
}

type HistoryEntry struct {
	ID            string    `json:"id,omitempty"`
	PlayerAddress *string   `json:"player_address"`
	DiceResults   []int     `json:"dice_results"`
	TotalScore    int       `json:"total_score"`
	NFTGenerated  bool      `json:"nft_generated"`
	Timestamp     Timestamp `json:"timestamp"`
	GameMode      Mode      `json:"game_mode,omitempty"`
}

type historyResponse struct {
	Games []HistoryEntry `json:"games"`
}

type LeaderboardEntry struct {
	PlayerAddress *string `json:"_id"`
	TotalScore    int     `json:"total_score"`
	GamesPlayed   int     `json:"games_played"`
}

type leaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type User struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
	Username      string `json:"username"`
	GamesPlayed   int    `json:"games_played"`
	TotalScore    int    `json:"total_score"`
	NFTsOwned     int    `json:"nfts_owned"`
}

type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
