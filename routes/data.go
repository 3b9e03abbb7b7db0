// Copyright 2026 swaralipi04. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package routes

/*
 * This file contains the dataset management apis
 */

import (
	"context"
	"net/http"
	"strings"

	"github.com/swaralipi04/openoa-Assignment/config"
	libfile "github.com/swaralipi04/openoa-Assignment/file"
	"github.com/swaralipi04/openoa-Assignment/plant"
	"github.com/swaralipi04/openoa-Assignment/routes/response"
)

//Example loads the bundled example dataset into the store
func Example(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	/*
	 * We will get the app context
	 * Then we will load the bundled example dataset
	 * Then we will register it with the store
	 */

	//getting the app context
	appCtx := ctx.Value(AppContextKey).(*config.AppContext)
	appCtx.Log.Info("Got a request to load the example dataset")

	if r.Method != http.MethodPost {
		response.WriteError(w, response.Error{Err: "Method not allowed"}, http.StatusMethodNotAllowed)
		return
	}

	//loading the example dataset
	d, err := appCtx.Examples.Load()
	if err != nil {
		//error while loading the bundled example dataset
		appCtx.Log.Error("error while loading the example dataset", err.Error())
		response.WriteError(w, response.Error{Err: err.Error()}, response.StatusCode(err))
		return
	}

	//registering the dataset with the store
	id := appCtx.Store.Register(d)

	appCtx.Log.Info("Successfully loaded the example dataset as", id)
	response.Write(w, response.Message{Message: "Successfully loaded the example dataset", Data: d.Summary()})
}

//Upload creates a dataset out of the uploaded data files. The name of
//each multipart form part has to be the data category of its file
func Upload(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	/*
	 * We will get the app context
	 * Then we will parse the multipart form within the upload size limit
	 * Then we will ingest the file of each part as the table of its category
	 * Then we will assemble the dataset out of the tables
	 * Finally we will register it with the store
	 */

	//getting the app context
	appCtx := ctx.Value(AppContextKey).(*config.AppContext)
	appCtx.Log.Info("Got a request to upload the data files")

	if r.Method != http.MethodPost {
		response.WriteError(w, response.Error{Err: "Method not allowed"}, http.StatusMethodNotAllowed)
		return
	}

	//parsing the multipart form
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		//error while parsing the multipart form
		appCtx.Log.Error("error while parsing the upload request", err.Error())
		response.WriteError(w, response.Error{Err: "Couldn't parse the upload. The request has to be a multipart form within the upload size limit"}, http.StatusBadRequest)
		return
	}

	//ingesting the file of each part
	tables := map[plant.Category]*plant.Table{}
	for name, headers := range r.MultipartForm.File {
		cat := plant.Category(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := plant.Schemas[cat]; !ok {
			//the part isn't named after a data category
			appCtx.Log.Error("error while resolving the upload part", name)
			response.WriteError(w, response.Error{Err: "Unidentified data category " + name}, http.StatusBadRequest)
			return
		}
		if len(headers) != 1 {
			//a category came with more than one file
			appCtx.Log.Error("error while resolving the upload part", name, "expected one file got", len(headers))
			response.WriteError(w, response.Error{Err: "Expected exactly one file for the " + string(cat) + " data"}, http.StatusBadRequest)
			return
		}

		f, err := headers[0].Open()
		if err != nil {
			//error while opening the uploaded file
			appCtx.Log.Error("error while opening the uploaded file", headers[0].Filename, err.Error())
			response.WriteError(w, response.Error{Err: "Couldn't read the uploaded file " + headers[0].Filename}, http.StatusInternalServerError)
			return
		}
		table, err := libfile.Parse(cat, headers[0].Filename, f)
		f.Close()
		if err != nil {
			//the file failed the ingest gauntlet
			appCtx.Log.Error("error while ingesting the", cat, "file", headers[0].Filename, err.Error())
			response.WriteError(w, response.Error{Err: err.Error()}, response.StatusCode(err))
			return
		}
		tables[cat] = table
	}

	//assembling the dataset
	d, err := plant.NewDataset(plant.SourceUpload, tables)
	if err != nil {
		//error while assembling the dataset out of the uploaded tables
		appCtx.Log.Error("error while assembling the uploaded dataset", err.Error())
		response.WriteError(w, response.Error{Err: err.Error()}, response.StatusCode(err))
		return
	}

	//registering the dataset with the store
	id := appCtx.Store.Register(d)

	appCtx.Log.Info("Successfully uploaded the dataset", id, "with", len(tables), "data files")
	response.Write(w, response.Message{Message: "Successfully uploaded the dataset", Data: d.Summary()})
}

//List returns the summaries of the registered datasets
func List(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	/*
	 * We will get the app context
	 * Then we will list the datasets registered with the store
	 */

	//getting the app context
	appCtx := ctx.Value(AppContextKey).(*config.AppContext)
	appCtx.Log.Info("Got a request to list the datasets")

	list := appCtx.Store.List()

	appCtx.Log.Info("Successfully fetched the list of datasets of length", len(list))
	response.Write(w, response.Message{Message: "Successfully fetched the list", Data: list})
}

//Dataset serves the apis addressing a single dataset by its id. The
//summary of a dataset is served on GET {id}/summary and a dataset is
//removed on DELETE {id}
func Dataset(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	/*
	 * We will get the app context
	 * Then we will parse the dataset id out of the request path
	 * Then we will serve the summary or the removal as per the request
	 */

	//getting the app context
	appCtx := ctx.Value(AppContextKey).(*config.AppContext)

	//parsing the dataset id out of the request path
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, APIRoot+"/data/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case r.Method == http.MethodGet && len(parts) == 2 && parts[1] == "summary":
		summary(appCtx, w, parts[0])
	case r.Method == http.MethodDelete && len(parts) == 1 && len(parts[0]) != 0:
		remove(appCtx, w, parts[0])
	default:
		response.WriteError(w, response.Error{Err: "Not found"}, http.StatusNotFound)
	}
}

//summary writes the summary of the dataset with the given id
func summary(appCtx *config.AppContext, w http.ResponseWriter, id string) {
	appCtx.Log.Info("Got a request to get the summary of the dataset", id)

	d, err := appCtx.Store.Get(id)
	if err != nil {
		//error while getting the dataset
		appCtx.Log.Error("error while getting the dataset", id, err.Error())
		response.WriteError(w, response.Error{Err: err.Error()}, response.StatusCode(err))
		return
	}

	appCtx.Log.Info("Successfully fetched the summary of the dataset", id)
	response.Write(w, response.Message{Message: "Successfully fetched the info", Data: d.Summary()})
}

//remove deletes the dataset with the given id
func remove(appCtx *config.AppContext, w http.ResponseWriter, id string) {
	appCtx.Log.Info("Got a request to delete the dataset", id)

	if err := appCtx.Store.Delete(id); err != nil {
		//error while deleting the dataset
		appCtx.Log.Error("error while deleting the dataset", id, err.Error())
		response.WriteError(w, response.Error{Err: err.Error()}, response.StatusCode(err))
		return
	}

	appCtx.Log.Info("Successfully deleted the dataset", id)
	response.Write(w, response.Message{Message: "Successfully deleted the dataset"})
}

func init() {
	AddRoutes(
		Route{
			Version:     "v1",
			Pattern:     "/data/example",
			HandlerFunc: Example,
		},
		Route{
			Version:     "v1",
			Pattern:     "/data/upload",
			HandlerFunc: Upload,
		},
		Route{
			Version:     "v1",
			Pattern:     "/data/list",
			HandlerFunc: List,
		},
		Route{
			Version:     "v1",
			Pattern:     "/data/",
			HandlerFunc: Dataset,
		},
	)
}
