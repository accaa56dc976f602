package grpcapi

import (
	"context"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"

	"google.golang.org/grpc"
)

const (
	jobPortalServiceName = "jobportal.JobPortal"

	jobPortalGetJob      = "/" + jobPortalServiceName + "/GetJob"
	jobPortalCreateJob   = "/" + jobPortalServiceName + "/CreateJob"
	jobPortalListJobs    = "/" + jobPortalServiceName + "/ListJobs"
	jobPortalApplyForJob = "/" + jobPortalServiceName + "/ApplyForJob"
)

type JobPortalServer interface {
	GetJob(ctx context.Context, in *JobRequest) (*entity.JobOutputModel, error)
	CreateJob(ctx context.Context, in *CreateJobRequest) (*entity.JobOutputModel, error)
	ListJobs(ctx context.Context, in *ListRequest) (*JobListResponse, error)
	ApplyForJob(ctx context.Context, in *ApplyForJobRequest) (*ApplyForJobResponse, error)
}

type jobPortalServer struct {
	jobService service.Job
}

func NewJobPortalServer(services *service.Services) JobPortalServer {
	return &jobPortalServer{jobService: services.Job}
}

func (s *jobPortalServer) GetJob(ctx context.Context, in *JobRequest) (*entity.JobOutputModel, error) {
	return s.jobService.GetJob(ctx, in.JobId)
}

func (s *jobPortalServer) CreateJob(ctx context.Context, in *CreateJobRequest) (*entity.JobOutputModel, error) {
	return s.jobService.CreateJob(ctx, &entity.CreateJobInput{
		Title: in.Title, Description: in.Description, Salary: in.Salary,
		Location: in.Location, JobType: in.JobType, CompanyId: in.CompanyId,
	})
}

func (s *jobPortalServer) ListJobs(ctx context.Context, in *ListRequest) (*JobListResponse, error) {
	jobs, err := s.jobService.ListJobs(ctx, entity.NewPaginationInput(in.Limit, in.Offset))
	if err != nil {
		return nil, err
	}

	return &JobListResponse{Jobs: jobs}, nil
}

func (s *jobPortalServer) ApplyForJob(ctx context.Context, in *ApplyForJobRequest) (*ApplyForJobResponse, error) {
	application, err := s.jobService.ApplyForJob(ctx, in.JobId, &entity.CreateApplicationInput{
		ApplicantId: in.ApplicantId, CoverLetter: in.CoverLetter, ResumeUrl: in.ResumeUrl,
	})
	if err != nil {
		return nil, err
	}

	return &ApplyForJobResponse{Message: "Application submitted successfully", ApplicationId: application.Id}, nil
}

func RegisterJobPortalServer(s grpc.ServiceRegistrar, srv JobPortalServer) {
	s.RegisterService(&jobPortalServiceDesc, srv)
}

var jobPortalServiceDesc = grpc.ServiceDesc{
	ServiceName: jobPortalServiceName,
	HandlerType: (*JobPortalServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetJob",
			Handler: unaryHandler(jobPortalGetJob, func(srv interface{}, ctx context.Context, in *JobRequest) (interface{}, error) {
				return srv.(JobPortalServer).GetJob(ctx, in)
			}),
		},
		{
			MethodName: "CreateJob",
			Handler: unaryHandler(jobPortalCreateJob, func(srv interface{}, ctx context.Context, in *CreateJobRequest) (interface{}, error) {
				return srv.(JobPortalServer).CreateJob(ctx, in)
			}),
		},
		{
			MethodName: "ListJobs",
			Handler: unaryHandler(jobPortalListJobs, func(srv interface{}, ctx context.Context, in *ListRequest) (interface{}, error) {
				return srv.(JobPortalServer).ListJobs(ctx, in)
			}),
		},
		{
			MethodName: "ApplyForJob",
			Handler: unaryHandler(jobPortalApplyForJob, func(srv interface{}, ctx context.Context, in *ApplyForJobRequest) (interface{}, error) {
				return srv.(JobPortalServer).ApplyForJob(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// JobPortalClient calls the job portal over a connection made with Dial.
type JobPortalClient struct {
	cc grpc.ClientConnInterface
}

func NewJobPortalClient(cc grpc.ClientConnInterface) *JobPortalClient {
	return &JobPortalClient{cc}
}

func (c *JobPortalClient) GetJob(ctx context.Context, in *JobRequest, opts ...grpc.CallOption) (*entity.JobOutputModel, error) {
	out := new(entity.JobOutputModel)
	if err := invoke(ctx, c.cc, jobPortalGetJob, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *JobPortalClient) CreateJob(ctx context.Context, in *CreateJobRequest, opts ...grpc.CallOption) (*entity.JobOutputModel, error) {
	out := new(entity.JobOutputModel)
	if err := invoke(ctx, c.cc, jobPortalCreateJob, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *JobPortalClient) ListJobs(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*JobListResponse, error) {
	out := new(JobListResponse)
	if err := invoke(ctx, c.cc, jobPortalListJobs, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *JobPortalClient) ApplyForJob(ctx context.Context, in *ApplyForJobRequest, opts ...grpc.CallOption) (*ApplyForJobResponse, error) {
	out := new(ApplyForJobResponse)
	if err := invoke(ctx, c.cc, jobPortalApplyForJob, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}
