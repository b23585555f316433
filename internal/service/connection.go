package service

import (
	"context"
	"errors"
	"fmt"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/logger"
	"crewvar-backend/internal/obs"
	"crewvar-backend/internal/repository"
)

type connectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
	noteSvc  NotificationService
}

func NewConnectionService(
	connRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
) ConnectionService {
	return &connectionService{
		connRepo: connRepo,
		userRepo: userRepo,
		noteSvc:  noteSvc,
	}
}

func (s *connectionService) SendRequest(ctx context.Context, requesterID, receiverID int32, message string) (req *domain.ConnectionRequest, err error) {
	defer func() { obs.RecordTransition("send_request", err) }()

	if requesterID == receiverID {
		return nil, fmt.Errorf("%w: cannot connect to yourself", domain.ErrValidation)
	}
	if len(message) > domain.MaxConnectionMessageLen {
		return nil, fmt.Errorf("%w: message exceeds %d characters", domain.ErrValidation, domain.MaxConnectionMessageLen)
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}

	// A block in either direction pre-empts the send entirely.
	blocked, err := s.connRepo.IsBlockedEitherWay(ctx, requesterID, receiverID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("%w: pair is blocked", domain.ErrInvalidStateTransition)
	}

	// The repository's unique constraint is the serialization point: of two
	// concurrent sends for the same pair exactly one insert wins, the loser
	// surfaces ErrAlreadyExists. Declined rows are not active, so
	// resubmission after a decline goes straight through.
	req = &domain.ConnectionRequest{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Message:     message,
		Status:      domain.ConnectionStatusPending,
	}
	if err := s.connRepo.CreatePending(ctx, req); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: request already pending or accepted", domain.ErrAlreadyExists)
		}
		return nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err == nil {
		note := &domain.Notification{
			UserID:  receiverID,
			Type:    domain.NotificationTypeConnectionRequest,
			Title:   "New Connection Request",
			Message: fmt.Sprintf("%s wants to connect with you", requester.DisplayName),
			Attributes: map[string]string{
				"request_id":   fmt.Sprintf("%d", req.ID),
				"requester_id": fmt.Sprintf("%d", requesterID),
			},
		}
		if err := s.noteSvc.Dispatch(ctx, note); err != nil {
			logger.Warn("Failed to dispatch connection request notification", "error", err, "receiver_id", receiverID)
		}
	}

	return req, nil
}

func (s *connectionService) Respond(ctx context.Context, actorID, requestID int32, decision domain.ConnectionStatus) (req *domain.ConnectionRequest, err error) {
	defer func() { obs.RecordTransition("respond", err) }()

	if decision != domain.ConnectionStatusAccepted && decision != domain.ConnectionStatusDeclined {
		return nil, fmt.Errorf("%w: decision must be ACCEPTED or DECLINED", domain.ErrValidation)
	}

	req, err = s.connRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != actorID {
		// Only the receiver may respond; the requester attempting to
		// self-accept is an authorization failure, not a state one.
		return nil, fmt.Errorf("%w: only the receiver may respond", domain.ErrUnauthorized)
	}

	// The compare-and-set guard makes a double submit land here with
	// ErrInvalidStateTransition instead of overwriting the terminal state
	// or emitting a second notification.
	if err := s.connRepo.UpdateStatusFromPending(ctx, requestID, decision); err != nil {
		return nil, err
	}
	req.Status = decision

	if decision == domain.ConnectionStatusAccepted {
		s.notifyAccepted(ctx, req)
	}
	// Declines are silent by design: the requester is never notified.

	return req, nil
}

func (s *connectionService) notifyAccepted(ctx context.Context, req *domain.ConnectionRequest) {
	receiver, rErr := s.userRepo.GetByID(ctx, req.ReceiverID)
	requester, qErr := s.userRepo.GetByID(ctx, req.RequesterID)
	if rErr != nil || qErr != nil {
		logger.Warn("Skipping accept notifications, party lookup failed", "request_id", req.ID)
		return
	}

	for _, pair := range []struct {
		to   int32
		name string
	}{
		{req.RequesterID, receiver.DisplayName},
		{req.ReceiverID, requester.DisplayName},
	} {
		note := &domain.Notification{
			UserID:  pair.to,
			Type:    domain.NotificationTypeConnectionAccepted,
			Title:   "Connection Accepted",
			Message: fmt.Sprintf("You are now connected with %s", pair.name),
			Attributes: map[string]string{
				"request_id": fmt.Sprintf("%d", req.ID),
			},
		}
		if err := s.noteSvc.Dispatch(ctx, note); err != nil {
			logger.Warn("Failed to dispatch accept notification", "error", err, "user_id", pair.to)
		}
	}
}

func (s *connectionService) Cancel(ctx context.Context, actorID, requestID int32) (err error) {
	defer func() { obs.RecordTransition("cancel", err) }()

	req, err := s.connRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RequesterID != actorID {
		return fmt.Errorf("%w: only the requester may cancel", domain.ErrUnauthorized)
	}
	// Deleting only while pending returns the pair to NONE; a request that
	// was answered in the meantime is left alone.
	return s.connRepo.DeletePending(ctx, requestID)
}

func (s *connectionService) Block(ctx context.Context, actorID, counterpartyID int32) (err error) {
	defer func() { obs.RecordTransition("block", err) }()

	if actorID == counterpartyID {
		return fmt.Errorf("%w: cannot block yourself", domain.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(ctx, counterpartyID); err != nil {
		return fmt.Errorf("counterparty: %w", err)
	}
	if err := s.connRepo.CreateBlock(ctx, actorID, counterpartyID); err != nil {
		return err
	}

	// Void any in-flight request so the pair does not stay active under the
	// block. Best effort; the block row alone already suppresses state.
	if active, err := s.connRepo.GetActiveByPair(ctx, actorID, counterpartyID); err == nil {
		if active.Status == domain.ConnectionStatusPending {
			if err := s.connRepo.DeletePending(ctx, active.ID); err != nil {
				logger.Warn("Failed to void pending request on block", "error", err, "request_id", active.ID)
			}
		}
	}
	return nil
}

func (s *connectionService) Unblock(ctx context.Context, actorID, counterpartyID int32) (err error) {
	defer func() { obs.RecordTransition("unblock", err) }()
	return s.connRepo.DeleteBlock(ctx, actorID, counterpartyID)
}

func (s *connectionService) StateFor(ctx context.Context, viewerID, otherID int32) (domain.ConnectionState, error) {
	if viewerID == otherID {
		return domain.ConnectionStateNone, nil
	}
	blocked, err := s.connRepo.IsBlockedEitherWay(ctx, viewerID, otherID)
	if err != nil {
		return "", err
	}
	if blocked {
		return domain.ConnectionStateBlocked, nil
	}
	active, err := s.connRepo.GetActiveByPair(ctx, viewerID, otherID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ConnectionStateNone, nil
	}
	if err != nil {
		return "", err
	}
	return domain.ConnectionState(active.Status), nil
}

func (s *connectionService) List(ctx context.Context, userID int32, status string) ([]domain.ConnectionRequest, error) {
	return s.connRepo.ListByUser(ctx, userID, status)
}
