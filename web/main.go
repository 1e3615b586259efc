package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-path-tracer/pkg/scene"
	"github.com/df07/go-path-tracer/web/server"
)

var (
	port        = flag.Int("port", 8080, "Port to serve on")
	scenesDir   = flag.String("scenes-dir", "scenes", "Directory of JSON scene files")
	texturePath = flag.String("texture", scene.DefaultEarthTexture, "Image used by the earth scene")
	workers     = flag.Int("workers", 0, "Rows rendered concurrently per request (0 uses every CPU)")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.CopyStandardLogTo("INFO")

	webServer := server.NewServer(*port,
		server.WithScenesDir(*scenesDir),
		server.WithTexturePath(*texturePath),
		server.WithWorkers(*workers),
	)

	glog.Infof("Path Tracer Web Server")
	glog.Infof("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
