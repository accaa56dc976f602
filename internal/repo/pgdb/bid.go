package pgdb

import (
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"
	"job-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

const bidColumns = "bid.id, bid.project_id, bid.freelancer_id, freelancer.full_name, bid.amount, bid.proposal, " +
	"bid.delivery_days, bid.status, bid.submitted_at, bid.accepted_at"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func scanBid(row rowScanner) (*entity.Bid, error) {
	var bid entity.Bid
	err := row.Scan(&bid.Id, &bid.ProjectId, &bid.FreelancerId, &bid.FreelancerName, &bid.Amount, &bid.Proposal,
		&bid.DeliveryDays, &bid.Status, &bid.SubmittedAt, &bid.AcceptedAt)
	if err != nil {
		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) CreateBid(dbc dbctx.Context, bid *entity.Bid) (uuid.UUID, error) {
	if !bid.Status.Valid() {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("project_id", "freelancer_id", "amount", "proposal", "delivery_days", "status", "submitted_at").
		Values(bid.ProjectId, bid.FreelancerId, bid.Amount, bid.Proposal, bid.DeliveryDays, string(bid.Status),
			bid.SubmittedAt).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), createBidSql, args...).Scan(&id); err != nil {
		return uuid.Nil, translateError(err)
	}

	return id, nil
}

func (r *BidRepo) GetBidById(dbc dbctx.Context, id uuid.UUID) (*entity.Bid, error) {
	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("freelancer on freelancer.id = bid.freelancer_id").
		Where("bid.id = ?", id).
		ToSql()

	bid, err := scanBid(runner(r.Postgres, dbc).QueryRowContext(ctxOf(dbc), getBidSql, args...))
	if err != nil {
		return nil, translateError(err)
	}

	return bid, nil
}

func (r *BidRepo) DoesBidExist(dbc dbctx.Context, projectId uuid.UUID, freelancerId uuid.UUID) (bool, error) {
	return exists(r.Postgres, dbc, r.SqlBuilder.
		Select("1").
		From("bid").
		Where("project_id = ?", projectId).
		Where("freelancer_id = ?", freelancerId))
}

func (r *BidRepo) UpdateBidStatus(dbc dbctx.Context, id uuid.UUID, status entity.BidStatus, acceptedAt *time.Time) error {
	if !status.Valid() {
		return repo_errors.ErrInvalidValue
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", string(status)).
		Set("accepted_at", acceptedAt).
		Where("id = ?", id).
		ToSql()

	res, err := runner(r.Postgres, dbc).ExecContext(ctxOf(dbc), updateStatusSql, args...)
	if err != nil {
		return translateError(err)
	}

	return requireAffected(res)
}

func (r *BidRepo) RejectOtherProjectBids(dbc dbctx.Context, projectId uuid.UUID, keepBidId uuid.UUID) (int64, error) {
	rejectSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", string(entity.BidRejected)).
		Where("project_id = ?", projectId).
		Where("id <> ?", keepBidId).
		ToSql()

	res, err := runner(r.Postgres, dbc).ExecContext(ctxOf(dbc), rejectSql, args...)
	if err != nil {
		return 0, translateError(err)
	}

	return res.RowsAffected()
}

func (r *BidRepo) GetProjectBids(dbc dbctx.Context, projectId uuid.UUID) ([]entity.Bid, error) {
	getBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("freelancer on freelancer.id = bid.freelancer_id").
		Where("bid.project_id = ?", projectId).
		OrderBy("bid.submitted_at DESC").
		ToSql()

	rows, err := runner(r.Postgres, dbc).QueryContext(ctxOf(dbc), getBidsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}
