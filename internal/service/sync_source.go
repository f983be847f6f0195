// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

const clientTimeLayout = "20060102T150405Z"

// inboundRecord buffers a streamed add or replace until its end call.
type inboundRecord struct {
	replace     bool
	localID     string
	contentType string
	fieldLevel  bool
	data        bytes.Buffer
}

// contactSyncSource exposes the contact store to the session layer. It is
// driven from a single session goroutine.
type contactSyncSource struct {
	sc       SessionContext
	mapper   *IdentifierMapper
	detector ChangeDetector

	// started is set once the session log was taken over by OnSyncStart.
	started    bool
	mode       models.SyncMode
	prevAnchor string
	sessionLog models.SessionLog
	changes    models.ChangeSet
	liveCount  int

	enumerator *changeEnumerator
	inbound    *inboundRecord

	counters  models.SyncCounters
	progress  models.Progress
	handshake models.Handshake
}

// NewContactSyncSource returns the [SyncSource] of the local address book.
func NewContactSyncSource(sc SessionContext) SyncSource {
	return &contactSyncSource{
		sc:       sc,
		mapper:   NewIdentifierMapper(sc.ItemStates, sc.IDs),
		detector: NewChangeDetector(sc.Items, sc.ItemStates),
	}
}

func (s *contactSyncSource) Name() string {
	return s.sc.Config.SourceName
}

// OnSyncStart implements [SyncSource]. The previous anchor is cleared in the
// persisted log before any change is made, so a session interrupted by a
// crash is followed by a full sync.
func (s *contactSyncSource) OnSyncStart(ctx context.Context, requested models.SyncMode) (models.SyncMode, error) {
	log := s.sc.log(ctx)
	s.reset()

	if _, err := s.mapper.Load(ctx); err != nil {
		log.Err(err).Str("func", "contactSyncSource.OnSyncStart").Msg("failed to load item state table")
		return requested, err
	}

	sessionLog, err := s.sc.SessionLogs.Get(ctx, s.Name())
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.OnSyncStart").Msg("failed to read session log")
		return requested, fmt.Errorf("read session log: %w", err)
	}

	s.prevAnchor = sessionLog.Anchors.Last
	sessionLog.Anchors.Next = strconv.FormatInt(s.sc.now().UnixMilli(), 10)
	sessionLog.Anchors.Last = ""
	if err = s.sc.SessionLogs.Save(ctx, sessionLog); err != nil {
		log.Err(err).Str("func", "contactSyncSource.OnSyncStart").Msg("failed to save session log")
		return requested, fmt.Errorf("save session log: %w", err)
	}
	s.sessionLog = sessionLog
	s.started = true

	mode := requested
	if mode == models.SyncRefreshFromServer {
		if err = s.sc.Items.DeleteAll(ctx); err != nil {
			log.Err(err).Str("func", "contactSyncSource.OnSyncStart").Msg("failed to wipe local items")
			return mode, fmt.Errorf("wipe local items: %w", err)
		}
		if err = s.mapper.Rebuild(ctx); err != nil {
			return mode, err
		}
	} else {
		detectMode := models.DetectChangesOnly
		if s.prevAnchor == "" || mode.IsFull() {
			detectMode = models.DetectFull
		}

		s.changes, err = s.detector.ComputeChanges(ctx, detectMode)
		if err != nil {
			return mode, err
		}

		if (!s.changes.StateValid || s.prevAnchor == "") && !mode.IsRefresh() {
			mode = models.SyncSlow
		}
	}
	s.mode = mode

	s.liveCount, err = s.sc.Items.Count(ctx)
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.OnSyncStart").Msg("failed to count items")
		return mode, fmt.Errorf("count items: %w", err)
	}

	s.enumerator, err = newChangeEnumerator(ctx, s.sc, s.mapper, !mode.IsFull(), s.recordSent)
	if err != nil {
		return mode, err
	}
	if mode.SendsToServer() {
		s.progress.SendTotal = s.enumerator.Size()
	}

	s.handshake = models.Handshake{
		ClientTime:        s.sc.now().UTC().Format(clientTimeLayout),
		ConflictPolicy:    s.sc.Config.ConflictPolicy,
		DetectionDuration: s.changes.Duration.Milliseconds(),
	}

	log.Info().
		Str("requested", requested.String()).
		Str("mode", mode.String()).
		Int("pending", s.changes.Pending()).
		Int("live", s.liveCount).
		Msg("sync session started")

	return mode, nil
}

func (s *contactSyncSource) reset() {
	s.started = false
	s.mode = models.SyncTwoWay
	s.prevAnchor = ""
	s.sessionLog = models.SessionLog{}
	s.changes = models.ChangeSet{}
	s.liveCount = 0
	s.enumerator = nil
	s.inbound = nil
	s.counters = models.SyncCounters{}
	s.progress = models.Progress{}
	s.handshake = models.Handshake{}
}

func (s *contactSyncSource) GetAllRecords(ctx context.Context) (RecordEnumerator, error) {
	return s.records(ctx, false)
}

func (s *contactSyncSource) GetChangedRecords(ctx context.Context) (RecordEnumerator, error) {
	return s.records(ctx, true)
}

func (s *contactSyncSource) records(ctx context.Context, changedOnly bool) (RecordEnumerator, error) {
	if s.enumerator == nil {
		return nil, ErrSessionNotStarted
	}
	if err := s.enumerator.SetChangedOnly(ctx, changedOnly); err != nil {
		return nil, err
	}

	if s.mode.SendsToServer() {
		s.progress.SendTotal = s.enumerator.Size()
	}
	return s.enumerator, nil
}

// recordSent counts a record handed to the peer. Unchanged items are sent
// as replacements during full syncs.
func (s *contactSyncSource) recordSent(record models.Record) {
	switch record.ChangeType {
	case models.ChangeAdd:
		s.counters.SentAdds++
	case models.ChangeDelete:
		s.counters.SentDeletes++
	default:
		s.counters.SentReplaces++
	}
	s.progress.Sent++
}

func (s *contactSyncSource) AddRecordBegin(ctx context.Context, parentID, parentGlobalID, globalID, contentType string) error {
	if s.enumerator == nil {
		return ErrSessionNotStarted
	}

	s.counters.Inbound++
	s.inbound = &inboundRecord{contentType: contentType}

	s.sc.log(ctx).Debug().
		Str("global_id", globalID).
		Str("parent_id", parentID).
		Str("parent_global_id", parentGlobalID).
		Msg("receiving new record")
	return nil
}

func (s *contactSyncSource) AddRecordData(_ context.Context, data []byte) error {
	return s.appendData(data, false)
}

func (s *contactSyncSource) AddRecordEnd(ctx context.Context, commit bool) (string, error) {
	rec, err := s.takeInbound(false)
	if err != nil || !commit {
		return "", err
	}

	return s.add(ctx, rec.data.Bytes())
}

func (s *contactSyncSource) ReplaceRecordBegin(ctx context.Context, localID, contentType string, fieldLevel bool) error {
	if s.enumerator == nil {
		return ErrSessionNotStarted
	}

	s.counters.Inbound++
	s.inbound = &inboundRecord{
		replace:     true,
		localID:     localID,
		contentType: contentType,
		fieldLevel:  fieldLevel,
	}

	s.sc.log(ctx).Debug().Str("local_id", localID).Bool("field_level", fieldLevel).Msg("receiving replacement")
	return nil
}

func (s *contactSyncSource) ReplaceRecordData(_ context.Context, data []byte) error {
	return s.appendData(data, true)
}

// ReplaceRecordEnd implements [SyncSource]. A replacement of an item that
// no longer exists locally is applied as an add and the new identifier is
// returned.
func (s *contactSyncSource) ReplaceRecordEnd(ctx context.Context, commit bool) (string, error) {
	rec, err := s.takeInbound(true)
	if err != nil || !commit {
		return "", err
	}

	log := s.sc.log(ctx)
	row, item, found, err := s.lookup(ctx, rec.localID)
	if err != nil {
		s.counters.ReceiveFailures++
		return "", err
	}
	if !found {
		log.Info().Str("func", "contactSyncSource.ReplaceRecordEnd").Str("local_id", rec.localID).Msg("replaced item is gone, adding it instead")
		return s.add(ctx, rec.data.Bytes())
	}

	contact, err := s.sc.Codec.Decode(rec.data.Bytes())
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.ReplaceRecordEnd").Str("local_id", rec.localID).Msg("failed to decode replacement")
		s.counters.ReceiveFailures++
		return "", err
	}
	if rec.fieldLevel {
		if contact, err = mergeContact(item.Contact, contact); err != nil {
			s.counters.ReceiveFailures++
			return "", err
		}
	}

	item.Contact = contact
	updated, err := s.sc.Items.Update(ctx, item)
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.ReplaceRecordEnd").Str("item_id", item.ID).Msg("failed to update item")
		s.counters.ReceiveFailures++
		return "", err
	}

	row.ChangeType = models.ChangeNone
	row.Version = updated.Version
	if err = s.sc.ItemStates.Update(ctx, row); err != nil {
		// The item is updated; the next detection reports it as modified.
		log.Err(err).Str("func", "contactSyncSource.ReplaceRecordEnd").Int64("row_id", row.RowID).Msg("failed to refresh item state")
	}

	s.counters.ReceivedReplaces++
	s.progress.Received++
	return rec.localID, nil
}

// row returns the row named by localID. A row that reused the slot of the
// named one is reported as [store.ErrStateNotFound].
func (s *contactSyncSource) row(ctx context.Context, localID string) (models.ItemState, error) {
	rowID, generation, err := s.mapper.Resolve(localID)
	if err != nil {
		return models.ItemState{}, err
	}

	row, err := s.sc.ItemStates.GetByRowID(ctx, rowID)
	if err != nil {
		return models.ItemState{}, err
	}
	if row.Generation != generation {
		return models.ItemState{}, fmt.Errorf("%w: %q was reissued", store.ErrStateNotFound, localID)
	}

	return row, nil
}

// lookup resolves localID to its row and live item. found is false when
// either is missing; a stale row is removed on the way.
func (s *contactSyncSource) lookup(ctx context.Context, localID string) (models.ItemState, models.Item, bool, error) {
	row, err := s.row(ctx, localID)
	if errors.Is(err, ErrInvalidIdentifier) || errors.Is(err, store.ErrStateNotFound) {
		return models.ItemState{}, models.Item{}, false, nil
	}
	if err != nil {
		return models.ItemState{}, models.Item{}, false, err
	}

	if row.ChangeType == models.ChangeDelete {
		return row, models.Item{}, false, s.sc.ItemStates.Remove(ctx, row.RowID)
	}

	item, err := s.sc.Items.Fetch(ctx, row.ItemID)
	if errors.Is(err, store.ErrItemNotFound) {
		return row, models.Item{}, false, s.sc.ItemStates.Remove(ctx, row.RowID)
	}
	if err != nil {
		return row, models.Item{}, false, err
	}

	return row, item, true, nil
}

func (s *contactSyncSource) add(ctx context.Context, data []byte) (string, error) {
	log := s.sc.log(ctx)

	contact, err := s.sc.Codec.Decode(data)
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.add").Msg("failed to decode record")
		s.counters.ReceiveFailures++
		return "", err
	}

	if s.sc.Config.MaxItems > 0 && s.liveCount+1 > s.sc.Config.MaxItems {
		log.Warn().Int("live", s.liveCount).Int("max_items", s.sc.Config.MaxItems).Msg("address book is full")
		s.counters.ReceiveFailures++
		return "", ErrDeviceFull
	}

	item, err := s.sc.Items.Create(ctx, contact)
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.add").Msg("failed to create item")
		s.counters.ReceiveFailures++
		return "", err
	}

	row, err := s.sc.ItemStates.Insert(ctx, item.ID, models.ChangeNone, item.Version)
	if err != nil {
		log.Err(err).Str("func", "contactSyncSource.add").Str("item_id", item.ID).Msg("failed to track new item, rolling back")
		if delErr := s.sc.Items.Delete(ctx, item.ID); delErr != nil {
			log.Err(delErr).Str("func", "contactSyncSource.add").Str("item_id", item.ID).Msg("failed to roll back new item")
		}
		s.counters.ReceiveFailures++
		return "", err
	}

	s.liveCount++
	s.counters.ReceivedAdds++
	s.progress.Received++
	return s.mapper.LocalID(row), nil
}

// DeleteRecord implements [SyncSource].
func (s *contactSyncSource) DeleteRecord(ctx context.Context, localID string) error {
	if s.enumerator == nil {
		return ErrSessionNotStarted
	}
	s.counters.Inbound++

	log := s.sc.log(ctx)
	row, item, found, err := s.lookup(ctx, localID)
	if err != nil {
		s.counters.ReceiveFailures++
		return err
	}
	if !found {
		log.Debug().Str("local_id", localID).Msg("deleted item is already gone")
		return nil
	}

	if err = s.sc.Items.Delete(ctx, item.ID); err != nil && !errors.Is(err, store.ErrItemNotFound) {
		log.Err(err).Str("func", "contactSyncSource.DeleteRecord").Str("item_id", item.ID).Msg("failed to delete item")
		s.counters.ReceiveFailures++
		return err
	}
	if err == nil {
		s.liveCount--
	}

	if err = s.sc.ItemStates.Remove(ctx, row.RowID); err != nil {
		log.Err(err).Str("func", "contactSyncSource.DeleteRecord").Int64("row_id", row.RowID).Msg("failed to remove item state")
	}

	s.counters.ReceivedDeletes++
	s.progress.Received++
	return nil
}

func (s *contactSyncSource) CopyRecord(_ context.Context, localID, _ string) (string, error) {
	return "", fmt.Errorf("%w: copy %s", ErrUnsupportedOperation, localID)
}

func (s *contactSyncSource) MoveRecord(_ context.Context, localID, _ string) error {
	return fmt.Errorf("%w: move %s", ErrUnsupportedOperation, localID)
}

func (s *contactSyncSource) OnAddResult(ctx context.Context, localID string, status models.Status) error {
	return s.acknowledge(ctx, "add", localID, status)
}

func (s *contactSyncSource) OnReplaceResult(ctx context.Context, localID string, status models.Status) error {
	return s.acknowledge(ctx, "replace", localID, status)
}

func (s *contactSyncSource) OnDeleteResult(ctx context.Context, localID string, status models.Status) error {
	return s.acknowledge(ctx, "delete", localID, status)
}

// acknowledge settles a pending change. Success and remote-wins clear it;
// any other status leaves it pending for the next session.
func (s *contactSyncSource) acknowledge(ctx context.Context, op, localID string, status models.Status) error {
	log := s.sc.log(ctx).With().Str("op", op).Str("local_id", localID).Int("status", status.Code).Logger()

	switch {
	case status.IsSuccess():
		s.counters.Acknowledged++
	case status.IsRemoteWins():
		s.counters.Conflicts++
	default:
		log.Warn().Msg("change rejected by peer, keeping it pending")
		s.counters.AckFailures++
		return nil
	}

	row, err := s.row(ctx, localID)
	if errors.Is(err, ErrInvalidIdentifier) {
		log.Warn().Err(err).Msg("result for unknown identifier")
		return err
	}
	if errors.Is(err, store.ErrStateNotFound) {
		log.Debug().Msg("result for untracked row")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Str("func", "contactSyncSource.acknowledge").Msg("failed to read item state")
		return err
	}

	if row.ChangeType == models.ChangeDelete {
		err = s.sc.ItemStates.Remove(ctx, row.RowID)
	} else {
		row.ChangeType = models.ChangeNone
		err = s.sc.ItemStates.Update(ctx, row)
	}
	if err != nil {
		log.Error().Err(err).Str("func", "contactSyncSource.acknowledge").Msg("failed to clear pending change")
		return err
	}

	return nil
}

// OnSyncEnd implements [SyncSource]. It is a no-op for a session whose
// start never reached the session log.
func (s *contactSyncSource) OnSyncEnd(ctx context.Context, success bool, status models.Status) error {
	if !s.started {
		return nil
	}
	log := s.sc.log(ctx)

	switch {
	case success:
		s.sessionLog.Anchors.Last = s.sessionLog.Anchors.Next
	case s.counters.Inbound > 0:
		s.sessionLog.Anchors.Last = ""
	default:
		s.sessionLog.Anchors.Last = s.prevAnchor
	}

	s.sessionLog.Totals.Add(s.counters)
	s.sessionLog.LastStatus = status.Code
	endedAt := s.sc.now()
	s.sessionLog.LastSyncAt = &endedAt

	s.started = false
	s.enumerator = nil
	s.inbound = nil

	if err := s.sc.SessionLogs.Save(ctx, s.sessionLog); err != nil {
		log.Err(err).Str("func", "contactSyncSource.OnSyncEnd").Msg("failed to save session log")
		return fmt.Errorf("save session log: %w", err)
	}

	log.Info().
		Bool("success", success).
		Int("status", status.Code).
		Int("sent", s.counters.Sent()).
		Int("received", s.counters.Received()).
		Int("ack_failures", s.counters.AckFailures).
		Msg("sync session ended")
	return nil
}

func (s *contactSyncSource) Progress() models.Progress {
	return s.progress
}

func (s *contactSyncSource) Handshake() models.Handshake {
	return s.handshake
}

func (s *contactSyncSource) Counters() models.SyncCounters {
	return s.counters
}

func (s *contactSyncSource) appendData(data []byte, replace bool) error {
	if s.inbound == nil || s.inbound.replace != replace {
		return ErrNoRecordInProgress
	}

	s.inbound.data.Write(data)
	return nil
}

func (s *contactSyncSource) takeInbound(replace bool) (*inboundRecord, error) {
	rec := s.inbound
	if rec == nil || rec.replace != replace {
		return nil, ErrNoRecordInProgress
	}

	s.inbound = nil
	return rec, nil
}

// mergeContact overlays the non-empty fields of patch onto base.
func mergeContact(base, patch models.Contact) (models.Contact, error) {
	if err := mergo.Merge(&patch, base); err != nil {
		return base, fmt.Errorf("merge contact fields: %w", err)
	}
	return patch, nil
}
