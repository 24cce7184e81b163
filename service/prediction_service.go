package service

import (
	"context"
	"fmt"

	"github.com/louisuxu-sys/BC-LINE/analysis"
	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"
	log "github.com/sirupsen/logrus"
)

// predictionService implements the PredictionService interface
type predictionService struct {
	historyRepo    RoomHistoryRepository
	bankroll       BankrollService
	eventPublisher EventPublisher
	historyLimit   int
}

// NewPredictionService creates a new prediction service.
// A non-positive historyLimit falls back to models.MaxHistoryLength.
func NewPredictionService(historyRepo RoomHistoryRepository, bankroll BankrollService, eventPublisher EventPublisher, historyLimit int) PredictionService {
	if historyLimit <= 0 {
		historyLimit = models.MaxHistoryLength
	}
	return &predictionService{
		historyRepo:    historyRepo,
		bankroll:       bankroll,
		eventPublisher: eventPublisher,
		historyLimit:   historyLimit,
	}
}

// Record appends outcomes to a room and returns the fresh analysis
func (s *predictionService) Record(ctx context.Context, userID, room string, outcomes []models.Outcome) (*models.RoomAnalysis, error) {
	if len(outcomes) == 0 {
		return nil, ErrNoOutcomes
	}

	// the first new hand settles the bet placed on the previous prediction
	s.bankroll.Settle(userID, room, outcomes[0])

	snapshot, err := s.historyRepo.Append(ctx, userID, room, outcomes, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to append outcomes: %w", err)
	}

	s.eventPublisher.Publish(events.OutcomesRecordedEvent{
		UserID:        userID,
		Room:          room,
		Outcomes:      outcomes,
		HistoryLength: len(snapshot.History),
	})

	result := s.analyze(snapshot)
	bankroll := s.bankroll.Place(userID, room, result.Prediction)
	result.Bankroll = &bankroll

	log.WithFields(log.Fields{
		"user_id":    userID,
		"room":       room,
		"recorded":   len(outcomes),
		"history":    len(snapshot.History),
		"suggestion": result.Prediction.Suggestion,
		"confidence": result.Prediction.Confidence,
	}).Debug("Recorded outcomes")

	s.eventPublisher.Publish(events.PredictionMadeEvent{
		UserID:     userID,
		Room:       room,
		Suggestion: result.Prediction.Suggestion,
		Confidence: result.Prediction.Confidence,
		Mode:       result.Prediction.Mode,
	})

	return result, nil
}

// Analyze returns the analysis of a room without changing it
func (s *predictionService) Analyze(ctx context.Context, userID, room string) (*models.RoomAnalysis, error) {
	snapshot, err := s.historyRepo.Get(ctx, userID, room)
	if err != nil {
		return nil, fmt.Errorf("failed to get room history: %w", err)
	}

	result := s.analyze(snapshot)
	bankroll := s.bankroll.Snapshot(userID, room)
	result.Bankroll = &bankroll
	return result, nil
}

// ClearRoom resets one room of a user
func (s *predictionService) ClearRoom(ctx context.Context, userID, room string) error {
	if err := s.historyRepo.ClearRoom(ctx, userID, room); err != nil {
		return fmt.Errorf("failed to clear room %s: %w", room, err)
	}
	s.bankroll.Reset(userID, room)

	s.eventPublisher.Publish(events.RoomClearedEvent{UserID: userID, Room: room})
	return nil
}

// ClearUser resets every room of a user
func (s *predictionService) ClearUser(ctx context.Context, userID string) error {
	if err := s.historyRepo.ClearUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear rooms of user: %w", err)
	}
	s.bankroll.ResetUser(userID)

	s.eventPublisher.Publish(events.RoomClearedEvent{UserID: userID})
	return nil
}

func (s *predictionService) analyze(snapshot *models.RoomSnapshot) *models.RoomAnalysis {
	totals := snapshot.Totals
	return &models.RoomAnalysis{
		UserID:     snapshot.UserID,
		Room:       snapshot.Room,
		History:    snapshot.History,
		Totals:     totals,
		Roads:      analysis.BuildRoads(snapshot.History),
		Prediction: analysis.Predict(snapshot.History, &totals),
	}
}
