package server

// Server aggregates the HTTP servers of individual resources.
type Server struct {
	ValuationServer
}

func NewServer(
	valuationServer ValuationServer,
) Server {
	return Server{
		ValuationServer: valuationServer,
	}
}
