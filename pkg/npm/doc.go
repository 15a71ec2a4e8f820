// Package npm reads release information from the npm registry.
//
// Only the abbreviated install metadata is requested: dist-tags and the
// list of published versions, which is what choosing a version to install
// needs.
//
//	client := npm.NewClient("", nil, nil)
//	v, err := client.FetchVersions(ctx, "react-native-svg")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(v.Latest(), v.Versions[:5])
package npm
