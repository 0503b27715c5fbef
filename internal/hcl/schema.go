package hcl

import "github.com/hashicorp/hcl/v2"

// projectRoot decodes only the project block of a file.
type projectRoot struct {
	Project *projectBlock `hcl:"project,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// projectBlock is kept as a raw body so its attributes can be evaluated in
// dependency order.
type projectBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// fileRoot decodes everything except the project block.
type fileRoot struct {
	Pipelines []*pipelineBlock `hcl:"pipeline,block"`
	Compile   *compileBlock    `hcl:"compile,block"`
	Notify    *notifyBlock     `hcl:"notify,block"`
}

type pipelineBlock struct {
	Name    string            `hcl:"name,label"`
	Command string            `hcl:"command"`
	Args    []string          `hcl:"args,optional"`
	Dir     string            `hcl:"dir,optional"`
	Env     map[string]string `hcl:"env,optional"`
	Targets []string          `hcl:"targets,optional"`
}

type compileBlock struct {
	Target  string   `hcl:"target"`
	Command string   `hcl:"command"`
	Args    []string `hcl:"args,optional"`
	Dir     string   `hcl:"dir,optional"`
}

type notifyBlock struct {
	Kind               string `hcl:"kind,label"`
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event,optional"`
	Timeout            string `hcl:"timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}
