package grpcapi

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"
	"job-marketplace-api/pkg/logger"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeJobs struct {
	service.Job
}

func (fakeJobs) GetJob(_ context.Context, jobId string) (*entity.JobOutputModel, error) {
	switch jobId {
	case "missing":
		return nil, service.ErrJobNotFound
	case "bad":
		return nil, errors.New("pq: password authentication failed")
	}
	return &entity.JobOutputModel{Id: jobId, Title: "Backend engineer", Status: string(entity.JobActive)}, nil
}

func (fakeJobs) ListJobs(_ context.Context, pg *entity.PaginationInput) ([]entity.JobOutputModel, error) {
	jobs := make([]entity.JobOutputModel, 0, pg.Limit)
	for i := 0; i < pg.Limit; i++ {
		jobs = append(jobs, entity.JobOutputModel{Title: "job"})
	}
	return jobs, nil
}

func (fakeJobs) ApplyForJob(_ context.Context, jobId string, _ *entity.CreateApplicationInput) (*entity.ApplicationOutputModel, error) {
	if jobId == "closed" {
		return nil, service.ErrJobNotActive
	}
	return &entity.ApplicationOutputModel{Id: "app-1", JobId: jobId}, nil
}

type fakeProjects struct {
	service.Project
}

func (fakeProjects) SubmitBid(_ context.Context, projectId string, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, service.ErrInvalidBidAmount
	}
	return &entity.BidOutputModel{Id: "bid-1", ProjectId: projectId, Amount: input.Amount, Status: string(entity.BidSubmitted)}, nil
}

func (fakeProjects) AcceptBid(_ context.Context, bidId string) (*entity.BidOutputModel, error) {
	if bidId == "late" {
		return nil, service.ErrProjectNotOpen
	}
	return &entity.BidOutputModel{Id: bidId, Status: string(entity.BidAccepted)}, nil
}

func (fakeProjects) ListOpenProjects(context.Context, *entity.PaginationInput) ([]entity.ProjectOutputModel, error) {
	return []entity.ProjectOutputModel{{Id: "p1", Status: string(entity.ProjectOpen)}}, nil
}

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	services := &service.Services{Job: fakeJobs{}, Project: fakeProjects{}}
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(logger.NewNop())
	RegisterJobPortalServer(srv, NewJobPortalServer(services))
	RegisterMarketplaceServer(srv, NewMarketplaceServer(services))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := Dial(ctx, "bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestJobPortalRoundTrip(t *testing.T) {
	client := NewJobPortalClient(startServer(t))
	ctx := context.Background()

	job, err := client.GetJob(ctx, &JobRequest{JobId: "j-42"})
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.Id != "j-42" || job.Title != "Backend engineer" {
		t.Fatalf("unexpected job %+v", job)
	}

	list, err := client.ListJobs(ctx, &ListRequest{Limit: 3})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(list.Jobs) != 3 {
		t.Fatalf("got %d jobs", len(list.Jobs))
	}

	applied, err := client.ApplyForJob(ctx, &ApplyForJobRequest{JobId: "j-42", ApplicantId: "u1", ResumeUrl: "https://cv"})
	if err != nil {
		t.Fatalf("ApplyForJob: %v", err)
	}
	if applied.ApplicationId != "app-1" || applied.Message != "Application submitted successfully" {
		t.Fatalf("unexpected response %+v", applied)
	}
}

func TestErrorCodes(t *testing.T) {
	conn := startServer(t)
	jobs := NewJobPortalClient(conn)
	projects := NewMarketplaceClient(conn)
	ctx := context.Background()

	cases := []struct {
		name    string
		call    func() error
		code    codes.Code
		message string
	}{
		{"not found", func() error {
			_, err := jobs.GetJob(ctx, &JobRequest{JobId: "missing"})
			return err
		}, codes.NotFound, "job not found"},
		{"internal hides cause", func() error {
			_, err := jobs.GetJob(ctx, &JobRequest{JobId: "bad"})
			return err
		}, codes.Internal, "Internal server error"},
		{"inactive job", func() error {
			_, err := jobs.ApplyForJob(ctx, &ApplyForJobRequest{JobId: "closed"})
			return err
		}, codes.NotFound, ""},
		{"invalid amount", func() error {
			_, err := projects.SubmitBid(ctx, &SubmitBidRequest{ProjectId: "p1", Amount: decimal.Zero})
			return err
		}, codes.InvalidArgument, ""},
		{"conflict", func() error {
			_, err := projects.AcceptBid(ctx, &AcceptBidRequest{BidId: "late"})
			return err
		}, codes.FailedPrecondition, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := status.FromError(tc.call())
			if !ok {
				t.Fatal("expected a gRPC status")
			}
			if st.Code() != tc.code {
				t.Fatalf("code = %s, want %s", st.Code(), tc.code)
			}
			if tc.message != "" && st.Message() != tc.message {
				t.Fatalf("message = %q, want %q", st.Message(), tc.message)
			}
		})
	}
}

func TestMarketplaceRoundTrip(t *testing.T) {
	client := NewMarketplaceClient(startServer(t))
	ctx := context.Background()

	submitted, err := client.SubmitBid(ctx, &SubmitBidRequest{ProjectId: "p1", FreelancerId: "f1", Amount: decimal.RequireFromString("250.75"), DeliveryDays: 5})
	if err != nil {
		t.Fatalf("SubmitBid: %v", err)
	}
	if submitted.Bid.ProjectId != "p1" || !submitted.Bid.Amount.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("unexpected bid %+v", submitted.Bid)
	}

	accepted, err := client.AcceptBid(ctx, &AcceptBidRequest{BidId: "bid-1"})
	if err != nil {
		t.Fatalf("AcceptBid: %v", err)
	}
	if accepted.Message != "Bid accepted successfully" || accepted.Bid.Status != "Accepted" {
		t.Fatalf("unexpected response %+v", accepted)
	}

	active, err := client.GetActiveProjects(ctx, &ListRequest{})
	if err != nil {
		t.Fatalf("GetActiveProjects: %v", err)
	}
	if len(active.Projects) != 1 || active.Projects[0].Status != "Open" {
		t.Fatalf("unexpected projects %+v", active.Projects)
	}
}

func TestUnaryHandlerWithoutInterceptor(t *testing.T) {
	handler := unaryHandler(jobPortalGetJob, func(srv interface{}, ctx context.Context, in *JobRequest) (interface{}, error) {
		return srv.(JobPortalServer).GetJob(ctx, in)
	})
	srv := NewJobPortalServer(&service.Services{Job: fakeJobs{}})

	decode := func(jobId string) func(interface{}) error {
		return func(v interface{}) error {
			v.(*JobRequest).JobId = jobId
			return nil
		}
	}

	resp, err := handler(srv, context.Background(), decode("j-1"), nil)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if job := resp.(*entity.JobOutputModel); job.Id != "j-1" {
		t.Fatalf("unexpected job %+v", job)
	}

	_, err = handler(srv, context.Background(), decode("missing"), nil)
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %s, want NotFound", status.Code(err))
	}

	decodeErr := errors.New("bad frame")
	if _, err := handler(srv, context.Background(), func(interface{}) error { return decodeErr }, nil); !errors.Is(err, decodeErr) {
		t.Fatalf("decode error not returned: %v", err)
	}
}
