// Copyright (c) 2025, The chefkoch Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client provides the Kubernetes client used to read recipes and
// flavours from ConfigMaps and to publish reports into ConfigMaps.
//
// GetKubeClient builds one client per process with sync.Once:
//
//	cs, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := cs.CoreV1().ConfigMaps("default").Get(ctx, "recipe", metav1.GetOptions{})
//
// Configuration discovery order: explicit path, KUBECONFIG,
// ~/.kube/config, in-cluster service account.
package client
