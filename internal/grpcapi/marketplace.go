package grpcapi

import (
	"context"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/service"

	"google.golang.org/grpc"
)

const (
	marketplaceServiceName = "marketplace.Marketplace"

	marketplaceGetProject        = "/" + marketplaceServiceName + "/GetProject"
	marketplaceCreateProject     = "/" + marketplaceServiceName + "/CreateProject"
	marketplaceGetActiveProjects = "/" + marketplaceServiceName + "/GetActiveProjects"
	marketplaceSubmitBid         = "/" + marketplaceServiceName + "/SubmitBid"
	marketplaceAcceptBid         = "/" + marketplaceServiceName + "/AcceptBid"
)

type MarketplaceServer interface {
	GetProject(ctx context.Context, in *ProjectRequest) (*entity.ProjectOutputModel, error)
	CreateProject(ctx context.Context, in *CreateProjectRequest) (*entity.ProjectOutputModel, error)
	GetActiveProjects(ctx context.Context, in *ListRequest) (*ProjectListResponse, error)
	SubmitBid(ctx context.Context, in *SubmitBidRequest) (*BidResponse, error)
	AcceptBid(ctx context.Context, in *AcceptBidRequest) (*BidResponse, error)
}

type marketplaceServer struct {
	projectService service.Project
}

func NewMarketplaceServer(services *service.Services) MarketplaceServer {
	return &marketplaceServer{projectService: services.Project}
}

func (s *marketplaceServer) GetProject(ctx context.Context, in *ProjectRequest) (*entity.ProjectOutputModel, error) {
	return s.projectService.GetProject(ctx, in.ProjectId)
}

func (s *marketplaceServer) CreateProject(ctx context.Context, in *CreateProjectRequest) (*entity.ProjectOutputModel, error) {
	return s.projectService.CreateProject(ctx, &entity.CreateProjectInput{
		Title: in.Title, Description: in.Description, Budget: in.Budget, Currency: in.Currency,
		SkillLevel: in.SkillLevel, RequiredSkills: in.RequiredSkills, Deadline: in.Deadline,
		ClientId: in.ClientId,
	})
}

// GetActiveProjects lists projects that still accept bids.
func (s *marketplaceServer) GetActiveProjects(ctx context.Context, in *ListRequest) (*ProjectListResponse, error) {
	projects, err := s.projectService.ListOpenProjects(ctx, entity.NewPaginationInput(in.Limit, in.Offset))
	if err != nil {
		return nil, err
	}

	return &ProjectListResponse{Projects: projects}, nil
}

func (s *marketplaceServer) SubmitBid(ctx context.Context, in *SubmitBidRequest) (*BidResponse, error) {
	bid, err := s.projectService.SubmitBid(ctx, in.ProjectId, &entity.CreateBidInput{
		FreelancerId: in.FreelancerId, Amount: in.Amount, Proposal: in.Proposal, DeliveryDays: in.DeliveryDays,
	})
	if err != nil {
		return nil, err
	}

	return &BidResponse{Message: "Bid submitted successfully", Bid: *bid}, nil
}

func (s *marketplaceServer) AcceptBid(ctx context.Context, in *AcceptBidRequest) (*BidResponse, error) {
	bid, err := s.projectService.AcceptBid(ctx, in.BidId)
	if err != nil {
		return nil, err
	}

	return &BidResponse{Message: "Bid accepted successfully", Bid: *bid}, nil
}

func RegisterMarketplaceServer(s grpc.ServiceRegistrar, srv MarketplaceServer) {
	s.RegisterService(&marketplaceServiceDesc, srv)
}

var marketplaceServiceDesc = grpc.ServiceDesc{
	ServiceName: marketplaceServiceName,
	HandlerType: (*MarketplaceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProject",
			Handler: unaryHandler(marketplaceGetProject, func(srv interface{}, ctx context.Context, in *ProjectRequest) (interface{}, error) {
				return srv.(MarketplaceServer).GetProject(ctx, in)
			}),
		},
		{
			MethodName: "CreateProject",
			Handler: unaryHandler(marketplaceCreateProject, func(srv interface{}, ctx context.Context, in *CreateProjectRequest) (interface{}, error) {
				return srv.(MarketplaceServer).CreateProject(ctx, in)
			}),
		},
		{
			MethodName: "GetActiveProjects",
			Handler: unaryHandler(marketplaceGetActiveProjects, func(srv interface{}, ctx context.Context, in *ListRequest) (interface{}, error) {
				return srv.(MarketplaceServer).GetActiveProjects(ctx, in)
			}),
		},
		{
			MethodName: "SubmitBid",
			Handler: unaryHandler(marketplaceSubmitBid, func(srv interface{}, ctx context.Context, in *SubmitBidRequest) (interface{}, error) {
				return srv.(MarketplaceServer).SubmitBid(ctx, in)
			}),
		},
		{
			MethodName: "AcceptBid",
			Handler: unaryHandler(marketplaceAcceptBid, func(srv interface{}, ctx context.Context, in *AcceptBidRequest) (interface{}, error) {
				return srv.(MarketplaceServer).AcceptBid(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// MarketplaceClient calls the marketplace over a connection made with Dial.
type MarketplaceClient struct {
	cc grpc.ClientConnInterface
}

func NewMarketplaceClient(cc grpc.ClientConnInterface) *MarketplaceClient {
	return &MarketplaceClient{cc}
}

func (c *MarketplaceClient) GetProject(ctx context.Context, in *ProjectRequest, opts ...grpc.CallOption) (*entity.ProjectOutputModel, error) {
	out := new(entity.ProjectOutputModel)
	if err := invoke(ctx, c.cc, marketplaceGetProject, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *MarketplaceClient) CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*entity.ProjectOutputModel, error) {
	out := new(entity.ProjectOutputModel)
	if err := invoke(ctx, c.cc, marketplaceCreateProject, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *MarketplaceClient) GetActiveProjects(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ProjectListResponse, error) {
	out := new(ProjectListResponse)
	if err := invoke(ctx, c.cc, marketplaceGetActiveProjects, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *MarketplaceClient) SubmitBid(ctx context.Context, in *SubmitBidRequest, opts ...grpc.CallOption) (*BidResponse, error) {
	out := new(BidResponse)
	if err := invoke(ctx, c.cc, marketplaceSubmitBid, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *MarketplaceClient) AcceptBid(ctx context.Context, in *AcceptBidRequest, opts ...grpc.CallOption) (*BidResponse, error) {
	out := new(BidResponse)
	if err := invoke(ctx, c.cc, marketplaceAcceptBid, in, out, opts); err != nil {
		return nil, err
	}

	return out, nil
}
