package main

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/haojie06/inference-http/internal/mlclient"
)

var serverURLs string
var modelName string
var minScore float64
var language string

var detectFacesCommand = &cli.Command{
	Name:      "detect-faces",
	Usage:     "Detect the faces on an image and embed each of them",
	ArgsUsage: "<image path>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "servers",
			Usage:       "Machine learning server urls, separated by ;",
			Aliases:     []string{"s"},
			Destination: &serverURLs,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Facial recognition model name",
			Aliases:     []string{"m"},
			Destination: &modelName,
		},
		&cli.Float64Flag{
			Name:        "min-score",
			Usage:       "Minimum face detection score",
			Value:       mlclient.DefaultMinFaceScore,
			Destination: &minScore,
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one image path argument")
		}
		client := mlclient.NewMLClient(mlclient.MachineLearningConfig{ServerURLs: serverURLs}, nil)
		model := modelName
		if model == "" {
			model = client.Config.FacialRecognitionModel
		}
		detected, err := client.DetectFaces(serverURLs, ctx.Args().First(), model, float32(minScore))
		if err != nil {
			return err
		}
		return printJSON(detected)
	},
}

var encodeImageCommand = &cli.Command{
	Name:      "encode-image",
	Usage:     "Embed an image for similarity search",
	ArgsUsage: "<image path>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "servers",
			Usage:       "Machine learning server urls, separated by ;",
			Aliases:     []string{"s"},
			Destination: &serverURLs,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Clip model name",
			Aliases:     []string{"m"},
			Destination: &modelName,
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one image path argument")
		}
		client := mlclient.NewMLClient(mlclient.MachineLearningConfig{ServerURLs: serverURLs}, nil)
		model := modelName
		if model == "" {
			model = client.Config.ClipModel
		}
		embedding, err := client.EncodeImage(serverURLs, ctx.Args().First(), model)
		if err != nil {
			return err
		}
		return printJSON(embedding)
	},
}

var encodeTextCommand = &cli.Command{
	Name:      "encode-text",
	Usage:     "Embed a text query for similarity search",
	ArgsUsage: "<text>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "servers",
			Usage:       "Machine learning server urls, separated by ;",
			Aliases:     []string{"s"},
			Destination: &serverURLs,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Clip model name",
			Aliases:     []string{"m"},
			Destination: &modelName,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "Query language hint for multilingual models",
			Aliases:     []string{"l"},
			Destination: &language,
		},
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one text argument")
		}
		client := mlclient.NewMLClient(mlclient.MachineLearningConfig{ServerURLs: serverURLs}, nil)
		model := modelName
		if model == "" {
			model = client.Config.ClipModel
		}
		embedding, err := client.EncodeText(serverURLs, ctx.Args().First(), model, language)
		if err != nil {
			return err
		}
		return printJSON(embedding)
	},
}

func printJSON(result interface{}) error {
	output, err := jsoniter.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func main() {
	app := &cli.App{
		Name:     "infer",
		Usage:    "Dispatch prediction requests to machine learning servers from the command line",
		Commands: []*cli.Command{detectFacesCommand, encodeImageCommand, encodeTextCommand},
	}
	if err := app.Run(os.Args); err != nil {
		panic(err)
	}
}
