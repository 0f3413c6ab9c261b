/*
Copyright © 2026 the rrtmio authors.
This file is part of rrtmio.

rrtmio is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

rrtmio is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with rrtmio.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command rrtmio converts between the input and output files of the RRTM
// longwave radiative transfer solver and TOML or JSON descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/rrtmio/rrtmioutil"
)

func main() {
	if err := rrtmioutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
