package initializers

import (
	"context"

	"doc-flow-backend/config"
	"doc-flow-backend/fiberlog"
	documenthandler "doc-flow-backend/lib/document"
	xlsexport "doc-flow-backend/lib/export/xls"
	filestorage "doc-flow-backend/lib/file-storage"
	notificationhandler "doc-flow-backend/lib/notification"
	reviewshandler "doc-flow-backend/lib/reviews"
	routehandler "doc-flow-backend/lib/route"
	routemodelhandler "doc-flow-backend/lib/route-model"
	taghandler "doc-flow-backend/lib/tag"
	authhandler "doc-flow-backend/lib/users/auth"
	connectionhub "doc-flow-backend/lib/ws/hub/connection-hub"
	s3client "doc-flow-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewInstance(s3client.Client)
	notificationhandler.NewHandler()
	authhandler.NewHandler()
	taghandler.NewHandler()
	routemodelhandler.NewHandler()
	routehandler.NewHandler()
	documenthandler.NewHandler()
	reviewshandler.NewHandler()
	xlsexport.NewHandler()
}
