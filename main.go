package main

import "github.com/harked/alfresco-bulk-import/cmd"

func main() {
	cmd.Execute()
}
