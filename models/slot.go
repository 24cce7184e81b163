package models

// SlotRTP is the fixed return-to-player percentage the advisor assumes for every machine
const SlotRTP = 96.89

// SlotLevel is the advisor's verdict for a machine
type SlotLevel string

const (
	SlotLevelHighVolatility    SlotLevel = "high-volatility"
	SlotLevelHotMachine        SlotLevel = "hot-machine"
	SlotLevelStronglyRecommend SlotLevel = "strongly-recommended"
	SlotLevelRecommend         SlotLevel = "recommended"
	SlotLevelWait              SlotLevel = "wait"
)

// SlotAdvice is the result of comparing a machine's score rate against its RTP
type SlotAdvice struct {
	TotalBet    float64
	ScoreRate   float64
	Space       float64
	Level       SlotLevel
	Title       string
	Color       string
	Description string
}
