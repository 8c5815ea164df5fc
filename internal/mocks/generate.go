package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/credential --output domain/credential --outpkg credentialmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/fixture --output domain/fixture --outpkg fixturemock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/calendar --output domain/calendar --outpkg calendarmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name OAuthClient --dir ../usecase --output usecase --outpkg usecasemock --filename oauth_client_mock.go
